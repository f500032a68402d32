package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/etnz/investpro/config"
)

// ExtensionPrefix is the prefix of external ipro-<subcommand> binaries.
const ExtensionPrefix = "ipro-"

// RunExtension attempts to find and execute an external ipro-<subcommand>
// binary. The global flags are passed as the IPRO_ variables that
// config.Load reads. It returns (true, exitCode) if an extension was found
// and executed, and (false, 0) otherwise.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := ExtensionPrefix + subcommand
	lp, err := exec.LookPath(name)
	if err != nil {
		logger().Debug("no extension", "name", name, "err", err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Env = append(os.Environ(),
		config.Prefix+"API_URL="+apiURL,
		config.Prefix+"ACCOUNT="+strconv.FormatInt(accountFlag, 10),
		config.Prefix+"CPF="+cpfFlag,
	)
	if verbose {
		cmd.Env = append(cmd.Env, config.Prefix+"LOG_LEVEL=debug")
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return true, exitErr.ExitCode()
		}
		fmt.Fprintf(stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
