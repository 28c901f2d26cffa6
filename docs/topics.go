// Package docs embeds the auragold user documentation.
//
// Each markdown file is a topic named after the file, readme.md is the
// entry point listing all the others.
package docs

import (
	"bufio"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed *.md
var docs embed.FS

// GetTopic returns the content of a documentation topic, "*" for all of them.
func GetTopic(topic string) (string, error) {
	if topic == "*" {
		topics, err := GetAllTopics()
		if err != nil {
			return "", err
		}
		return GetTopics(topics...)
	}

	content, err := docs.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	return string(content), nil
}

// GetTopics returns the content of multiple documentation topics concatenated together.
func GetTopics(topics ...string) (string, error) {
	var b strings.Builder
	for _, topic := range topics {
		content, err := GetTopic(topic)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// GetAllTopics returns the sorted list of topics, readme excluded.
func GetAllTopics() ([]string, error) {
	entries, err := fs.ReadDir(docs, ".")
	if err != nil {
		return nil, err
	}
	var topics []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || path.Ext(name) != ".md" {
			continue
		}
		if base := strings.TrimSuffix(name, ".md"); base != "readme" {
			topics = append(topics, base)
		}
	}
	sort.Strings(topics)
	return topics, nil
}

// Title returns the first level one heading of a topic.
func Title(topic string) (string, error) {
	content, err := GetTopic(topic)
	if err != nil {
		return "", err
	}
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		if title, ok := strings.CutPrefix(scanner.Text(), "# "); ok {
			return strings.TrimSpace(title), nil
		}
	}
	return topic, scanner.Err()
}
