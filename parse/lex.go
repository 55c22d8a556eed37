package parse

import "github.com/google/shlex"

// Split breaks a shell-style command line into its argument tokens.
func Split(s string) ([]string, error) {
	args, err := shlex.Split(s)
	if err != nil {
		return nil, err
	}

	return args, nil
}
