// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// normalizeArgs rewrites the single-dash long flags older build rules pass
// (-resInput x, -zipResOutput false) into GNU spellings pflag understands
// (--resInput x, --zipResOutput=false). Arguments before the subcommand name
// are checked against the root flags, later ones against the subcommand's.
// Everything after "--" is left alone.
func normalizeArgs(root *cobra.Command, argv []string) []string {
	flags := root.PersistentFlags()
	out := make([]string, 0, len(argv))

	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		if arg == "--" {
			return append(out, argv[i:]...)
		}

		if !strings.HasPrefix(arg, "-") {
			if sub := findSubcommand(root, arg); sub != nil {
				flags = mergedFlags(root, sub)
			}
			out = append(out, arg)
			continue
		}

		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		flag := flags.Lookup(name)
		if flag == nil || len(name) < 2 {
			out = append(out, arg)
			continue
		}

		long := "--" + name
		switch {
		case hasValue:
			out = append(out, long+"="+value)
		case flag.Value.Type() == "bool" && i+1 < len(argv) && isBoolLiteral(argv[i+1]):
			out = append(out, long+"="+strings.ToLower(argv[i+1]))
			i++
		default:
			out = append(out, long)
		}
	}
	return out
}

func findSubcommand(root *cobra.Command, name string) *cobra.Command {
	for _, c := range root.Commands() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// mergedFlags returns the subcommand flags plus the root persistent flags.
func mergedFlags(root, sub *cobra.Command) *pflag.FlagSet {
	fs := pflag.NewFlagSet(sub.Name(), pflag.ContinueOnError)
	fs.AddFlagSet(sub.Flags())
	fs.AddFlagSet(root.PersistentFlags())
	return fs
}

func isBoolLiteral(s string) bool {
	return strings.EqualFold(s, "true") || strings.EqualFold(s, "false")
}
