package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"

	"github.com/etnz/auragold/config"
)

// EnvVerbose tells extensions whether -v was set.
const EnvVerbose = "AURAGOLD_VERBOSE"

// RunExtension attempts to find and execute an external auragold-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
//
// The extension receives the resolved configuration as environment variables,
// so that it reads the same store as auragold.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "auragold-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		slog.Debug("external command not found in PATH", "command", externalCmdName, "error", err)
		return false, 0
	}

	env, err := extensionEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load configuration: %v\n", err)
		return true, 1
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), env...)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}

// extensionEnv returns the global flags and configuration as environment variables.
func extensionEnv() ([]string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return []string{
		config.EnvConfigFile + "=" + *configFile,
		config.EnvStoreDriver + "=" + cfg.Store.Driver,
		config.EnvStorePath + "=" + cfg.Store.Path,
		config.EnvCurrency + "=" + cfg.Currency,
		config.EnvModel + "=" + cfg.Model,
		EnvVerbose + "=" + strconv.FormatBool(*Verbose),
	}, nil
}
