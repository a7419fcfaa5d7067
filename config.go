package main

import (
	"os"
	"strconv"
)

const defaultPort = 8080

// Config is what the command line asks for.
type Config struct {
	Path        string
	Port        int
	KeepServing bool
	ShowQR      bool
	HistoryPath string
	ListHistory bool
	Help        bool
}

// getFlag removes "name value" from args and returns value, or def when the
// flag is absent. found is false when the flag is absent.
func getFlag(args []string, name string, def string) (value string, rest []string, found bool, err error) {
	for i, a := range args {
		if a != name {
			continue
		}
		if i+1 >= len(args) {
			return def, args, true, &ConfigError{Msg: "value is missing after " + name + " command-line argument"}
		}
		return args[i+1], append(args[:i:i], args[i+2:]...), true, nil
	}
	return def, args, false, nil
}

// hasFlag removes every occurrence of the given switches from args.
func hasFlag(args []string, names ...string) (bool, []string) {
	found := false
	rest := args[:0:0]
	for _, a := range args {
		match := false
		for _, n := range names {
			if a == n {
				match = true
				break
			}
		}
		if match {
			found = true
			continue
		}
		rest = append(rest, a)
	}
	return found, rest
}

// parseArgs reads the command line (without the program name). Switches may
// appear before or after the file path.
func parseArgs(args []string) (*Config, error) {
	cfg := &Config{Port: defaultPort}
	args = append([]string(nil), args...)

	if cfg.Help, args = hasFlag(args, "-h", "--help"); cfg.Help {
		return cfg, nil
	}
	cfg.KeepServing, args = hasFlag(args, "-k")
	cfg.ShowQR, args = hasFlag(args, "-q")
	cfg.ListHistory, args = hasFlag(args, "--list")

	portStr, args, found, err := getFlag(args, "-p", "")
	if err != nil {
		return nil, &ConfigError{Msg: "port number is missing after -p command-line argument"}
	}
	if found {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, &ConfigError{Msg: "invalid port number", Err: err}
		}
		cfg.Port = port
	}

	cfg.HistoryPath, args, _, err = getFlag(args, "--history", "")
	if err != nil {
		return nil, err
	}

	// Last one wins, as with repeated file arguments in the usage line.
	for _, a := range args {
		cfg.Path = a
	}
	return cfg, nil
}

// validate checks everything that can be checked before touching the network.
func (c *Config) validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return &ConfigError{Msg: "port value must be within 0 and 65535"}
	}
	if c.ListHistory {
		if c.HistoryPath == "" {
			return &ConfigError{Msg: "--list needs --history"}
		}
		return nil
	}
	if c.Path == "" {
		return &ConfigError{Msg: "no file to send"}
	}
	f, err := os.Open(c.Path)
	if err != nil {
		return &ConfigError{Msg: "failed to open the file '" + c.Path + "'", Err: err}
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return &ConfigError{Msg: "failed to stat the file '" + c.Path + "'", Err: err}
	}
	if fi.IsDir() {
		return &ConfigError{Msg: "'" + c.Path + "' is a directory"}
	}
	return nil
}
