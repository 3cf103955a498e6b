package idd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// exclusiveEpsilon shifts `\minimum>` and `\maximum<` bounds so that every
// runtime bound check is inclusive.
const exclusiveEpsilon = 1e-6

// ignoredLines are section markers of the IDD that carry no definition.
var ignoredLines = map[string]struct{}{
	"Lead Input;":      {},
	"Simulation Data;": {},
}

// parseState is the cursor threaded through the line consumer.
type parseState struct {
	source string
	line   int
	group  string
	object *ObjectDefinition
	field  *FieldDefinition
}

// Parse builds a Registry from IDD text. source names the text in errors.
func Parse(source string, r io.Reader) (*Registry, error) {
	reg := newRegistry(source)
	st := &parseState{source: source}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		st.line++
		if err := st.consume(reg, scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", source, err)
	}

	for _, def := range reg.defs {
		def.resolveIdentity()
	}
	return reg, nil
}

func (st *parseState) consume(reg *Registry, text string) error {
	ln := strings.TrimSpace(text)
	if ln == "" || strings.HasPrefix(ln, "!") {
		return nil
	}
	if _, skip := ignoredLines[ln]; skip {
		return nil
	}

	if strings.Contains(ln, `\group`) {
		st.group = strings.TrimSpace(strings.Replace(ln, `\group`, "", 1))
		return nil
	}

	if !strings.Contains(ln, `\`) {
		return st.openObject(reg, ln)
	}

	if st.object == nil {
		return st.errorf("", "directive outside of an object definition")
	}

	switch {
	case strings.Contains(ln, `\field`):
		st.openField(ln)
		return nil
	case strings.Contains(ln, `\note fields as indicated`), strings.Contains(ln, `\note For Week`):
		st.object.FieldsAsIndicated = true
		return nil
	case strings.Contains(ln, `\extensible:`):
		return st.extensible(ln)
	}

	parts := strings.Fields(ln)
	flag := strings.ToLower(parts[0])
	content := strings.Join(parts[1:], " ")
	// `\minimum>0` and `\maximum<100` are written without a space in places.
	for _, op := range []string{`\minimum>`, `\maximum<`} {
		if strings.HasPrefix(flag, op) && len(flag) > len(op) {
			content = strings.TrimSpace(parts[0][len(op):] + " " + content)
			flag = op
		}
	}

	if ok, err := st.applyObjectDirective(flag, content); ok || err != nil {
		return err
	}
	return st.applyFieldDirective(flag, content)
}

func (st *parseState) openObject(reg *Registry, ln string) error {
	if i := strings.Index(ln, "!"); i >= 0 {
		ln = ln[:i]
	}
	name := strings.TrimSpace(strings.NewReplacer(",", "", ";", "").Replace(ln))
	if name == "" {
		return st.errorf("", "empty object name")
	}
	if _, exists := reg.Lookup(name); exists {
		return &SchemaError{
			Subject: lineRange(st.source, st.line),
			Object:  name,
			Msg:     "object type declared twice",
		}
	}
	st.object = newObjectDefinition(name, st.group)
	st.field = nil
	reg.add(st.object)
	return nil
}

func (st *parseState) openField(ln string) {
	parts := strings.SplitN(ln, `\field`, 2)
	marker := strings.TrimSpace(strings.Trim(strings.TrimSpace(parts[0]), ",;"))
	name := strings.TrimSpace(parts[1])
	if name == "" {
		name = marker
	}
	f := &FieldDefinition{Name: name, Marker: marker, Kind: KindAlpha}
	if strings.HasPrefix(strings.ToUpper(marker), "N") {
		f.Kind = KindNumeric
	}
	st.object.addField(f)
	st.field = f
}

func (st *parseState) extensible(ln string) error {
	token := strings.Fields(ln)[0]
	arity := token[strings.LastIndex(token, ":")+1:]
	n, err := strconv.Atoi(arity)
	if err != nil || n < 0 {
		return st.errorf("extensible", "invalid extensible arity %q", arity)
	}
	st.object.Extensible = n
	return nil
}

// applyObjectDirective handles directives that always target the object.
func (st *parseState) applyObjectDirective(flag, content string) (bool, error) {
	obj := st.object
	switch flag {
	case `\memo`:
		obj.Memo = joinText(obj.Memo, content)
	case `\unique-object`:
		obj.Unique = true
	case `\required-object`:
		obj.Required = true
	case `\format`:
		obj.Format = content
	case `\min-fields`:
		n, err := strconv.Atoi(content)
		if err != nil || n < 0 {
			return true, st.errorf("min-fields", "invalid field count %q", content)
		}
		obj.MinFields = n
	default:
		return false, nil
	}
	return true, nil
}

// applyFieldDirective handles directives that target the open field.
func (st *parseState) applyFieldDirective(flag, content string) error {
	f := st.field
	if f == nil {
		if flag == `\note` {
			st.object.Memo = joinText(st.object.Memo, content)
			return nil
		}
		if isFieldDirective(flag) {
			return st.errorf(strings.TrimPrefix(flag, `\`), "directive before any field")
		}
		return st.errorf(strings.TrimPrefix(flag, `\`), "unknown flag")
	}

	switch flag {
	case `\note`:
		f.Note = joinText(f.Note, content)
	case `\type`:
		f.Type = content
	case `\default`:
		f.Default = content
	case `\key`:
		f.addKey(content)
	case `\minimum`, `\minimum>`, `\maximum`, `\maximum<`:
		v, err := strconv.ParseFloat(content, 64)
		if err != nil {
			return st.errorf(strings.TrimPrefix(flag, `\`), "invalid bound %q for", content)
		}
		switch flag {
		case `\minimum`:
			f.Minimum = &v
		case `\minimum>`:
			v += exclusiveEpsilon
			f.Minimum = &v
		case `\maximum`:
			f.Maximum = &v
		case `\maximum<`:
			v -= exclusiveEpsilon
			f.Maximum = &v
		}
	case `\retaincase`:
		f.RetainCase = true
	case `\units`:
		f.Units = content
	case `\ip-units`:
		f.IPUnits = content
	case `\object-list`:
		f.ObjectList = content
	case `\external-list`:
		f.ExternalList = content
	case `\required-field`:
		f.Required = true
	case `\reference`, `\reference-class-name`:
		f.Reference = content
	case `\unitsbasedonfield`:
		f.UnitsBasedOnField = content
	case `\begin-extensible`:
		f.BeginExtensible = true
	case `\autocalculatable`:
		f.Autocalculatable = true
	case `\autosizable`:
		f.Autosizable = true
	default:
		return st.errorf(strings.TrimPrefix(flag, `\`), "unknown flag")
	}
	return nil
}

func isFieldDirective(flag string) bool {
	switch flag {
	case `\type`, `\default`, `\key`, `\minimum`, `\minimum>`, `\maximum`, `\maximum<`,
		`\retaincase`, `\units`, `\ip-units`, `\object-list`, `\external-list`,
		`\required-field`, `\reference`, `\reference-class-name`, `\unitsbasedonfield`,
		`\begin-extensible`, `\autocalculatable`, `\autosizable`:
		return true
	}
	return false
}

func (st *parseState) errorf(directive, format string, args ...any) error {
	e := &SchemaError{
		Subject:   lineRange(st.source, st.line),
		Directive: directive,
		Msg:       fmt.Sprintf(format, args...),
	}
	if st.object != nil {
		e.Object = st.object.Name
	}
	return e
}

func joinText(existing, more string) string {
	more = strings.TrimSpace(more)
	if existing == "" {
		return more
	}
	if more == "" {
		return existing
	}
	return existing + " " + more
}
