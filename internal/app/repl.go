package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/peterh/liner"
	"github.com/vk/idfgo/internal/ctxlog"
	"github.com/vk/idfgo/internal/model"
	"github.com/vk/idfgo/internal/object"
)

const prompt = "idf> "

// errQuit ends the interactive session.
var errQuit = errors.New("quit")

var shellCommands = []string{
	"describe", "fields", "find", "get", "id", "required",
	"types", "set", "unset", "delete", "help", "quit",
}

const shellHelp = `Commands (arguments are comma separated, like instance records):
  types                        populated types and their object counts
  get <Type>[, <id>]           objects of a type
  id <id>                      first object with that identity
  set <Type>, <id>, <Field>, <value>
  unset <Type>, <id>, <Field>
  delete <Type>[, <id>]
  describe <Type>              schema memo of a type
  fields <Type>                schema fields of a type
  find <query>                 schema types containing query
  required                     schema-required types
  quit
`

// Interactive runs a line editing shell over m until EOF or quit.
func (a *App) Interactive(ctx context.Context, m *model.Model) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting interactive shell.")

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(func(line string) []string {
		return complete(m, line)
	})

	fmt.Fprint(a.outW, "Type 'help' for commands.\n")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := ln.Prompt(prompt)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(a.outW)
				return nil
			}
			logger.Error("Unexpected error reading prompt.", "error", err)
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)

		if err := a.execute(ctx, m, line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintf(a.outW, "error: %v\n", err)
		}
	}
}

// execute runs one shell command against m and writes its answer to the
// app's output.
func (a *App) execute(ctx context.Context, m *model.Model, line string) error {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	args := splitArgs(rest)
	w := a.outW

	switch strings.ToLower(cmd) {
	case "quit", "exit":
		return errQuit
	case "help", "?":
		fmt.Fprint(w, shellHelp)
	case "types":
		for _, key := range m.Types() {
			objs := m.Get(key).All()
			fmt.Fprintf(w, "%-40s %d\n", objs[0].Type(), len(objs))
		}
	case "get":
		if len(args) == 0 {
			return errors.New("usage: get <Type>[, <id>]")
		}
		entry := m.Get(args[0])
		if entry == nil {
			return fmt.Errorf("no %s objects", args[0])
		}
		found := false
		for _, obj := range entry.All() {
			if len(args) > 1 && !obj.MatchesID(args[1]) {
				continue
			}
			found = true
			printObject(w, obj)
		}
		if !found {
			return fmt.Errorf("no %s called %q", args[0], args[1])
		}
	case "id":
		if len(args) != 1 {
			return errors.New("usage: id <id>")
		}
		obj, ok := m.GetByID(args[0])
		if !ok {
			return fmt.Errorf("nothing called %q", args[0])
		}
		printObject(w, obj)
	case "set":
		if len(args) != 4 {
			return errors.New("usage: set <Type>, <id>, <Field>, <value>")
		}
		obj, err := m.Set(args[0], args[1], args[2], args[3])
		if err != nil {
			return err
		}
		printObject(w, obj)
	case "unset":
		if len(args) != 3 {
			return errors.New("usage: unset <Type>, <id>, <Field>")
		}
		obj, err := m.Unset(args[0], args[1], args[2])
		if err != nil {
			return err
		}
		printObject(w, obj)
	case "delete":
		if len(args) == 0 || len(args) > 2 {
			return errors.New("usage: delete <Type>[, <id>]")
		}
		id := ""
		if len(args) == 2 {
			id = args[1]
		}
		if !m.Delete(args[0], id) {
			return errors.New("nothing deleted")
		}
		ctxlog.FromContext(ctx).Info("Object deleted.", "type", args[0], "id", id)
	case "describe":
		if len(args) != 1 {
			return errors.New("usage: describe <Type>")
		}
		text, err := m.Describe(args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(w, text)
	case "fields":
		if len(args) != 1 {
			return errors.New("usage: fields <Type>")
		}
		text, err := m.Help(args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(w, text)
	case "find":
		// Queries keep their commas.
		for _, name := range m.Find(strings.TrimSpace(rest)) {
			fmt.Fprintln(w, name)
		}
	case "required":
		for _, name := range m.Registry().RequiredTypes() {
			fmt.Fprintln(w, name)
		}
	default:
		return fmt.Errorf("unknown command %q, type 'help'", cmd)
	}
	return nil
}

func splitArgs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// printObject writes obj in instance file notation.
func printObject(w io.Writer, obj *object.Object) {
	fields := obj.Fields()
	if len(fields) == 0 {
		fmt.Fprintf(w, "%s;\n", obj.Type())
		return
	}
	fmt.Fprintf(w, "%s,\n", obj.Type())
	for i, f := range fields {
		sep := ","
		if i == len(fields)-1 {
			sep = ";"
		}
		fmt.Fprintf(w, "  %-30s !- %s\n", f.Value.String()+sep, f.Name)
	}
}

// complete offers command names, then populated type names.
func complete(m *model.Model, line string) []string {
	cmd, rest, hasArgs := strings.Cut(line, " ")
	var out []string
	if !hasArgs {
		for _, c := range shellCommands {
			if strings.HasPrefix(c, strings.ToLower(cmd)) {
				out = append(out, c)
			}
		}
		return out
	}
	if strings.Contains(rest, ",") {
		return nil
	}
	prefix := strings.ToLower(strings.TrimSpace(rest))
	for _, key := range m.Types() {
		name := m.Get(key).All()[0].Type()
		if strings.HasPrefix(strings.ToLower(name), prefix) {
			out = append(out, cmd+" "+name)
		}
	}
	sort.Strings(out)
	return out
}
