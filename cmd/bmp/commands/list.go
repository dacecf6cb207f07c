package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/bluetooth-message-protocol/bmp-go/pkg/gatt"
)

// CharacteristicInfo describes a registered characteristic.
type CharacteristicInfo struct {
	UUID     string `json:"uuid" yaml:"uuid"`
	Name     string `json:"name" yaml:"name"`
	ReadOnly bool   `json:"read_only,omitempty" yaml:"read_only,omitempty"`
}

// Catalog is the output of the list command.
type Catalog struct {
	Characteristics []CharacteristicInfo `json:"characteristics" yaml:"characteristics"`
	Services        []gatt.Service       `json:"services" yaml:"services"`
}

// RunList lists registered characteristics and known services.
func RunList(env *Env, args []string) int {
	fs, format := newFormatFlagSet("list", env)
	fs.Usage = func() {
		fmt.Fprintln(env.Stderr, "Usage: bmp list [-format text|json|yaml]")
	}
	if err := fs.Parse(args); err != nil {
		return ExitCommandError
	}
	if err := validateFormat(*format); err != nil {
		writeError(env.Stderr, err)
		return ExitCommandError
	}
	if err := printCatalog(env.Stdout, *format, buildCatalog(env.Codec.Registry())); err != nil {
		writeError(env.Stderr, err)
		return ExitCommandError
	}
	return ExitSuccess
}

func buildCatalog(r *gatt.Registry) Catalog {
	var c Catalog
	for _, d := range r.Definitions() {
		c.Characteristics = append(c.Characteristics, CharacteristicInfo{
			UUID:     d.UUID.String(),
			Name:     d.Name,
			ReadOnly: d.ReadOnly,
		})
	}
	c.Services = gatt.Services()
	return c
}

func printCatalog(w io.Writer, format string, c Catalog) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	case "yaml":
		data, err := yaml.Marshal(c)
		if err != nil {
			return err
		}
		fmt.Fprint(w, string(data))
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Characteristics:")
	for _, ch := range c.Characteristics {
		access := "read/write"
		if ch.ReadOnly {
			access = "read-only"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", ch.UUID, ch.Name, access)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "Services:")
	for _, s := range c.Services {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", s.UUID, s.Name, s.UniformIdentifier)
	}
	return tw.Flush()
}
