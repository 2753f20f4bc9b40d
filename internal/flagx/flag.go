// Package flagx holds small helpers for parsing a subset of the command line
// without interfering with flags owned by other packages.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns the elements of args that belong to allowedFlags,
// together with their values. Both "-c conf.json" and "--config=conf.json"
// forms are recognised; a following token that starts with "-" is never
// consumed as a value.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// lookupString parses a single string flag, registered under every name in
// names, out of os.Args. The last occurrence wins.
func lookupString(usage string, names ...string) string {
	var value string

	allowed := make([]string, 0, len(names))
	for _, n := range names {
		allowed = append(allowed, "-"+n)
	}

	fs := flag.NewFlagSet("lookup", flag.ContinueOnError)
	fs.SetOutput(devNull{})
	for _, n := range names {
		fs.StringVar(&value, n, "", usage)
	}
	_ = fs.Parse(FilterArgs(os.Args[1:], allowed))

	return value
}

// JsonConfigFlags returns the JSON config path given via -c or -config,
// or "" when neither is present.
func JsonConfigFlags() string {
	return lookupString("path to JSON config file", "c", "config")
}

// EnvFileFlags returns the dotenv path given via -env, or "" when absent.
// There is no short form: -e is taken by the server's S3 endpoint flag.
func EnvFileFlags() string {
	return lookupString("path to .env file", "env")
}

type devNull struct{}

func (devNull) Write(p []byte) (int, error) { return len(p), nil }
