package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/five82/tally/internal/api"
	"github.com/five82/tally/internal/apperr"
	"github.com/five82/tally/internal/prefs"
)

// GetCommand fetches endpoint through deps.API and prints the JSON.
// A non-empty path selects a single field with gjson syntax ("items.0.title").
func GetCommand(ctx context.Context, deps *Deps, endpoint, path string, out io.Writer) error {
	body, err := api.Fetch[json.RawMessage](ctx, deps.API, endpoint)
	if err != nil {
		return err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return printJSON(out, body)
	}
	return printField(out, body, path)
}

// PostCommand posts the JSON document body to endpoint and prints the reply.
func PostCommand(ctx context.Context, deps *Deps, endpoint, body string, out io.Writer) error {
	reply, err := api.Post[json.RawMessage](ctx, deps.API, endpoint, json.RawMessage(body))
	if err != nil {
		return err
	}
	return printJSON(out, reply)
}

// PrefsCommand lists, reads or writes preferences:
//
//	prefs                 list every key
//	prefs get <key>       print one value
//	prefs set <key> <v>   validate, store and save
//
// An empty deps.PrefsPath keeps a set in memory only.
func PrefsCommand(deps *Deps, args []string, out io.Writer) error {
	p := deps.Prefs

	switch {
	case len(args) == 0 || (len(args) == 1 && args[0] == "list"):
		for _, key := range prefs.Keys() {
			v, _ := p.Get(key)
			fmt.Fprintf(out, "%s = %s\n", key, v)
		}
		return nil

	case args[0] == "get" && len(args) == 2:
		v, err := p.Get(args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, v)
		return nil

	case args[0] == "set" && len(args) == 3:
		if err := p.Set(args[1], args[2]); err != nil {
			return err
		}
		if deps.PrefsPath != "" {
			if err := prefs.Save(deps.PrefsPath, p); err != nil {
				return err
			}
		}
		deps.Prefs = p
		v, _ := p.Get(args[1])
		fmt.Fprintf(out, "%s = %s\n", args[1], v)
		deps.Logger.WithField("key", args[1]).Info("preference set")
		return nil
	}

	return apperr.ValidationError("usage: tally prefs [list | get <key> | set <key> <value>]")
}

func printField(out io.Writer, raw json.RawMessage, path string) error {
	res := gjson.GetBytes(raw, path)
	if !res.Exists() {
		return apperr.Newf(apperr.Validation, "no value at %q", path)
	}
	if res.IsObject() || res.IsArray() {
		return printJSON(out, json.RawMessage(res.Raw))
	}
	_, err := fmt.Fprintln(out, res.String())
	return err
}

// prettyOptions lays out every array element on its own line.
var prettyOptions = &pretty.Options{Indent: "  "}

func printJSON(out io.Writer, raw json.RawMessage) error {
	if !gjson.ValidBytes(raw) {
		return apperr.DecodingError("format response: invalid JSON")
	}
	_, err := out.Write(pretty.PrettyOptions(raw, prettyOptions))
	return err
}
