package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/sohnishi/acexs/ace/dispatch"
	"github.com/sohnishi/acexs/identifier"
	"github.com/sohnishi/acexs/internal/fingerprint"
	"github.com/sohnishi/acexs/internal/mirror"
	"github.com/sohnishi/acexs/xsdir"
)

func decodeCmd() *cli.Command {
	return &cli.Command{
		Name:  "decode",
		Usage: "decode a single nuclide table from an ACE file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Required: true, Usage: "path to the ACE file"},
			&cli.StringFlag{Name: "id", Required: true, Usage: "ZAID or SZAX identifier to decode"},
			&cli.IntFlag{Name: "start-line", Value: 0, Usage: "1-based line hint to resume the search from"},
		},
		Action: func(c *cli.Context) error {
			return decodeCommand(c)
		},
	}
}

func decodeCommand(c *cli.Context) error {
	n, err := dispatch.Decode(c.String("file"), c.String("id"), c.Int("start-line"))
	if err != nil {
		return fmt.Errorf("decoding %s: %w", c.String("id"), err)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"field", "value"})
	table.Append([]string{"identifier", n.ID})
	table.Append([]string{"class", n.NTY.String()})
	table.Append([]string{"ace version", strconv.Itoa(n.Header.Version)})

	switch {
	case n.Transport != nil:
		table.Append([]string{"reaction count", strconv.Itoa(len(n.Transport.Reactions))})
	case n.Dosimetry != nil:
		table.Append([]string{"reaction count", strconv.Itoa(len(n.Dosimetry.Reactions))})
	case n.Photoatomic != nil:
		table.Append([]string{"shell count", strconv.Itoa(len(n.Photoatomic.ElectronsPerShell))})
	}

	table.Render()
	return nil
}

func fingerprintCmd() *cli.Command {
	return &cli.Command{
		Name:  "fingerprint",
		Usage: "compute a content fingerprint of a file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Required: true, Usage: "path to the file to fingerprint"},
			&cli.StringFlag{Name: "algo", Value: "blake3", Usage: "blake3, blake2b, blake2s, sha3-256, or ripemd160"},
		},
		Action: func(c *cli.Context) error {
			return fingerprintCommand(c)
		},
	}
}

func fingerprintCommand(c *cli.Context) error {
	algo, err := fingerprint.ParseAlgorithm(c.String("algo"))
	if err != nil {
		return err
	}

	f, err := os.Open(c.String("file"))
	if err != nil {
		return fmt.Errorf("opening %s: %w", c.String("file"), err)
	}
	defer f.Close()

	sum, err := fingerprint.Sum(f, algo)
	if err != nil {
		return fmt.Errorf("fingerprinting %s: %w", c.String("file"), err)
	}

	fmt.Println(sum)
	return nil
}

func xsdirCmd() *cli.Command {
	return &cli.Command{
		Name:  "xsdir",
		Usage: "inspect an XSDIR directory file",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list every table entry in an XSDIR file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Required: true, Usage: "path to the xsdir file"},
					&cli.StringFlag{Name: "class", Usage: "restrict to one class suffix (c, nc, y, ny, ...)"},
				},
				Action: func(c *cli.Context) error {
					return xsdirListCommand(c)
				},
			},
			{
				Name:  "get",
				Usage: "look up a single table entry by identifier and class",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Required: true, Usage: "path to the xsdir file"},
					&cli.StringFlag{Name: "id", Required: true, Usage: "bare ZAID or full ZAID/SZAX identifier"},
					&cli.StringFlag{Name: "class", Required: true, Usage: "class suffix (c, nc, y, ny, ...)"},
				},
				Action: func(c *cli.Context) error {
					return xsdirGetCommand(c)
				},
			},
		},
	}
}

func openXsDir(path string) (*xsdir.XsDir, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return xsdir.Parse(f, path)
}

func xsdirListCommand(c *cli.Context) error {
	x, err := openXsDir(c.String("file"))
	if err != nil {
		return err
	}

	entries := x.All()
	if class := c.String("class"); class != "" {
		nty, err := identifier.ClassStrToNTY(class)
		if err != nil {
			return err
		}
		filtered := entries[:0]
		for _, e := range entries {
			if classMatches(nty, e.TableID) {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"table id", "awr", "filename", "address", "table length"})
	for _, e := range entries {
		table.Append([]string{
			e.TableID,
			strconv.FormatFloat(e.AWR, 'g', -1, 64),
			e.Filename,
			strconv.Itoa(e.Address),
			strconv.Itoa(e.TableLength),
		})
	}
	table.Render()
	return nil
}

func classMatches(nty identifier.NTY, tableID string) bool {
	re, ok := identifier.ClassRegex(nty)
	return ok && re.MatchString(identifier.ClassOf(tableID))
}

func xsdirGetCommand(c *cli.Context) error {
	x, err := openXsDir(c.String("file"))
	if err != nil {
		return err
	}

	nty, err := identifier.ClassStrToNTY(c.String("class"))
	if err != nil {
		return err
	}

	info, err := x.Get(c.String("id"), nty)
	if err != nil {
		return err
	}
	fmt.Println(info.String())
	return nil
}

func mirrorCmd() *cli.Command {
	return &cli.Command{
		Name:  "mirror",
		Usage: "mirror ACE tables listed on an HTML directory-index page",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "index", Required: true, Usage: "URL of the directory-index page"},
			&cli.StringFlag{Name: "dest", Required: true, Usage: "local directory to mirror into"},
			&cli.StringFlag{Name: "suffix", Value: "", Usage: "only mirror files whose name ends with this suffix"},
		},
		Action: func(c *cli.Context) error {
			return mirrorCommand(c)
		},
	}
}

func mirrorCommand(c *cli.Context) error {
	suffix := c.String("suffix")
	accept := func(name string) bool {
		return suffix == "" || strings.HasSuffix(name, suffix)
	}

	written, err := mirror.Mirror(http.DefaultClient, c.String("index"), c.String("dest"), accept)
	if err != nil {
		return fmt.Errorf("mirroring %s: %w", c.String("index"), err)
	}

	for _, path := range written {
		fmt.Println(path)
	}
	return nil
}
