package loader

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"ippvm/pkg/code"
)

// xmlNode is a generic element; the XML form is validated by hand so that
// every structural problem maps to the right status.
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []xmlNode  `xml:",any"`
	Text     string     `xml:",chardata"`
}

func (n xmlNode) attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// ParseXML parses the XML form produced by the IPPcode21 front end
func ParseXML(src []byte) ([]code.Instruction, error) {
	root, err := decodeDocument(src)
	if err != nil {
		return nil, errorf(StatusXMLMalformed, 0, "malformed XML: %v", err)
	}

	if root.XMLName.Local != "program" {
		return nil, errorf(StatusXMLStructure, 0, "root element is <%s>, expected <program>", root.XMLName.Local)
	}

	for _, a := range root.Attrs {
		switch a.Name.Local {
		case "language", "name", "description":
		default:
			return nil, errorf(StatusXMLStructure, 0, "unexpected attribute %q on <program>", a.Name.Local)
		}
	}

	if lang, _ := root.attr("language"); lang != "IPPcode21" {
		return nil, errorf(StatusXMLStructure, 0, "language must be IPPcode21, got %q", lang)
	}

	type ordered struct {
		order int
		in    code.Instruction
	}

	seen := make(map[int]bool, len(root.Children))
	list := make([]ordered, 0, len(root.Children))
	for _, el := range root.Children {
		order, in, err := parseInstruction(el)
		if err != nil {
			return nil, err
		}
		if seen[order] {
			return nil, errorf(StatusXMLStructure, order, "duplicate instruction order %d", order)
		}
		seen[order] = true
		list = append(list, ordered{order, in})
	}

	slices.SortFunc(list, func(a, b ordered) int { return a.order - b.order })

	program := make([]code.Instruction, len(list))
	for i, o := range list {
		program[i] = o.in
	}
	return program, nil
}

// decodeDocument reads exactly one root element. Only whitespace, comments,
// processing instructions and directives may surround it.
func decodeDocument(src []byte) (xmlNode, error) {
	var root xmlNode
	dec := xml.NewDecoder(bytes.NewReader(src))

	found := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return root, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if found {
				return root, fmt.Errorf("second root element <%s>", t.Name.Local)
			}
			if err := dec.DecodeElement(&root, &t); err != nil {
				return root, err
			}
			found = true
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return root, errors.New("text outside the root element")
			}
		case xml.Comment, xml.ProcInst, xml.Directive:
		default:
			return root, fmt.Errorf("unexpected %T outside the root element", tok)
		}
	}

	if !found {
		return root, errors.New("no root element")
	}
	return root, nil
}

func parseInstruction(el xmlNode) (int, code.Instruction, error) {
	if el.XMLName.Local != "instruction" || len(el.Attrs) != 2 {
		return 0, code.Instruction{}, errorf(StatusXMLStructure, 0, "unexpected element <%s>", el.XMLName.Local)
	}

	orderText, ok := el.attr("order")
	if !ok {
		return 0, code.Instruction{}, errorf(StatusXMLStructure, 0, "instruction without order")
	}
	order, err := strconv.Atoi(strings.TrimSpace(orderText))
	if err != nil || order <= 0 {
		return 0, code.Instruction{}, errorf(StatusXMLStructure, 0, "invalid order %q", orderText)
	}

	name, ok := el.attr("opcode")
	if !ok {
		return 0, code.Instruction{}, errorf(StatusXMLStructure, order, "instruction without opcode")
	}
	op, ok := code.LookupOpcode(name)
	if !ok || op.String() != name {
		return 0, code.Instruction{}, errorf(StatusXMLStructure, order, "unknown opcode %q", name)
	}

	params := op.Params()
	if len(el.Children) != len(params) {
		return 0, code.Instruction{}, errorf(StatusXMLStructure, order, "%s expects %d arguments, got %d", op, len(params), len(el.Children))
	}

	in := code.Instruction{Op: op, Args: make([]code.Argument, len(params)), Line: order}
	filled := make([]bool, len(params))
	for _, argEl := range el.Children {
		n, ok := argIndex(argEl.XMLName.Local, len(params))
		if !ok || filled[n] {
			return 0, code.Instruction{}, errorf(StatusXMLStructure, order, "unexpected argument element <%s>", argEl.XMLName.Local)
		}
		filled[n] = true

		a, err := parseArgument(params[n], argEl, order)
		if err != nil {
			return 0, code.Instruction{}, err
		}
		in.Args[n] = a
	}

	return order, in, nil
}

// argIndex maps "argN" to the zero-based position N-1
func argIndex(name string, arity int) (int, bool) {
	digits, ok := strings.CutPrefix(name, "arg")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 || n > arity {
		return 0, false
	}
	return n - 1, true
}

func parseArgument(p code.Param, el xmlNode, order int) (code.Argument, error) {
	if len(el.Attrs) != 1 || len(el.Children) != 0 {
		return code.Argument{}, errorf(StatusXMLStructure, order, "malformed <%s>", el.XMLName.Local)
	}

	typeAttr, ok := el.attr("type")
	if !ok {
		return code.Argument{}, errorf(StatusXMLStructure, order, "<%s> without type", el.XMLName.Local)
	}

	kind, ok := code.LookupArgKind(typeAttr)
	if !ok {
		return code.Argument{}, errorf(StatusXMLStructure, order, "unknown argument type %q", typeAttr)
	}

	if !p.Accepts(kind) {
		return code.Argument{}, errorf(StatusArgumentKind, order, "<%s> of type %s cannot be a %s", el.XMLName.Local, kind, p)
	}

	text := el.Text

	var a code.Argument
	switch kind {
	case code.ArgVar:
		a, ok = variable(text)
	case code.ArgLabel:
		a, ok = code.Label(text), validName(text)
	case code.ArgType:
		a, ok = code.Type(text), typeName(text)
	default:
		a, ok = literal(kind, text)
	}

	if !ok {
		return code.Argument{}, errorf(StatusXMLStructure, order, "invalid %s value %q", kind, text)
	}
	return a, nil
}
