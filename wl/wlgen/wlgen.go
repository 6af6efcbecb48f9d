// wlgen turns wayland protocol XML into the client bindings under wl/wlp.
// Regenerate with:
//
//	go run ./wl/wlgen -out wl/wlp protocols/*.xml
//
// The output is gofmt-formatted; hand edits to generated files survive only
// until the next run.
package main

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"flag"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/pkg/errors"
	"github.com/serenize/snaker"
	"github.com/sirupsen/logrus"
)

type Description struct {
	Summary string `xml:"summary,attr"`
	Text    string `xml:",chardata"`
}

type Request struct {
	Name        string       `xml:"name,attr"`
	Type        string       `xml:"type,attr"`
	Since       string       `xml:"since,attr"`
	Description *Description `xml:"description"`
	Args        []*Arg       `xml:"arg"`
}

type Event struct {
	Name        string       `xml:"name,attr"`
	Since       string       `xml:"since,attr"`
	Description *Description `xml:"description"`
	Args        []*Arg       `xml:"arg"`
}

type Enum struct {
	Name        string       `xml:"name,attr"`
	Since       string       `xml:"since,attr"`
	Bitfield    string       `xml:"bitfield,attr"`
	Description *Description `xml:"description"`
	Entries     []*Entry     `xml:"entry"`
}

type Arg struct {
	Name        string       `xml:"name,attr"`
	Type        string       `xml:"type,attr"`
	Summary     string       `xml:"summary,attr"`
	Interface   string       `xml:"interface,attr"`
	AllowNull   string       `xml:"allow-null,attr"`
	Enum        string       `xml:"enum,attr"`
	Description *Description `xml:"description"`
}

type Entry struct {
	Name        string       `xml:"name,attr"`
	Value       string       `xml:"value,attr"`
	Summary     string       `xml:"summary,attr"`
	Since       string       `xml:"since,attr"`
	Description *Description `xml:"description"`
}

type Interface struct {
	Name        string       `xml:"name,attr"`
	Version     string       `xml:"version,attr"`
	Description *Description `xml:"description"`
	Requests    []*Request   `xml:"request"`
	Events      []*Event     `xml:"event"`
	Enums       []*Enum      `xml:"enum"`
}

type Protocol struct {
	Name        string       `xml:"name,attr"`
	Copyright   string       `xml:"copyright"`
	Description *Description `xml:"description"`
	Interfaces  []*Interface `xml:"interface"`
}

// genFile wraps a parsed protocol with the import decisions the template
// cannot make on its own.
type genFile struct {
	*Protocol
	NeedsBytes  bool
	NeedsLogrus bool
}

func parse(raw []byte) (*Protocol, error) {
	p := &Protocol{}
	err := xml.Unmarshal(raw, p)
	return p, errors.Wrap(err, "unable to parse xml")
}

func genTemplate(templateText string) *template.Template {
	funcMap := template.FuncMap{
		"ifname":          InterfaceName,
		"camel":           snaker.SnakeToCamel,
		"camel_lower":     snaker.SnakeToCamelLower,
		"desc_to_comment": DescriptionToComment,
		"req_sig":         ReqSignature,
		"req_ret_sig":     ReqReturnSignature,
		"req_ret":         ReqReturn,
		"nil_ret":         NilReturn,
		"new_iface":       NewInterface,
		"has_fd":          HasFD,
		"evt_sig":         EvtSignature,
		"evt_call":        EvtCall,
		"evt_decodable":   EvtDecodable,
		"needs_len":       NeedsLen,
		"arg_decode":      ArgDecode,
		"arg_encode":      ArgEncode,
	}

	return template.Must(template.New("wl").Funcs(funcMap).Parse(templateText))
}

func InterfaceName(name string) string {
	return snaker.SnakeToCamel(strings.TrimPrefix(name, "wl_"))
}

func DescriptionToComment(desc string) string {
	buf := &bytes.Buffer{}
	scanner := bufio.NewScanner(strings.NewReader(strings.TrimSpace(desc)))
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			buf.WriteString("//\n")
			continue
		}
		buf.WriteString("// ")
		buf.Write(line)
		buf.WriteString("\n")
	}
	return buf.String()
}

func ArgName(arg *Arg) string {
	name := snaker.SnakeToCamelLower(arg.Name)
	if name == "interface" {
		name = "iface"
	}
	return name
}

// ArgSignature renders one parameter. Typed new_id args are handled by the
// caller (they become the leading listener parameter); untyped new_id args
// expand to the interface/version/id triple the wire demands.
func ArgSignature(arg *Arg) string {
	name := ArgName(arg)
	buf := bytes.NewBufferString(name)
	buf.WriteString(" ")
	switch arg.Type {
	case "int":
		buf.WriteString("int32")
	case "uint", "object":
		buf.WriteString("uint32")
	case "fixed":
		buf.WriteString("float64")
	case "string":
		buf.WriteString("string")
	case "array":
		buf.WriteString("[]byte")
	case "fd":
		buf.WriteString("*os.File")
	case "new_id":
		if arg.Interface == "" {
			return "iface string, version uint32, " + name + " uint32"
		}
		return ""
	default:
		return ""
	}
	return buf.String()
}

func ReqSignature(args []*Arg) string {
	argSigs := make([]string, 0)
	if ni := NewInterface(args); ni != "" {
		argSigs = append(argSigs, "l "+ni+"Listener")
	}
	for _, arg := range args {
		newSig := ArgSignature(arg)
		if newSig != "" {
			argSigs = append(argSigs, newSig)
		}
	}
	return strings.Join(argSigs, ", ")
}

// NewInterface names the binding type a typed new_id argument creates, or
// returns "" when the request creates nothing.
func NewInterface(args []*Arg) string {
	for _, arg := range args {
		if arg.Type == "new_id" && arg.Interface != "" {
			return InterfaceName(arg.Interface)
		}
	}
	return ""
}

func ReqReturnSignature(args []*Arg) string {
	ni := NewInterface(args)
	if ni == "" {
		return "error"
	}
	return fmt.Sprintf("(*%s, error)", ni)
}

func ReqReturn(args []*Arg) string {
	if NewInterface(args) == "" {
		return "nil"
	}
	return "ret, nil"
}

// NilReturn is the prefix for early error returns: methods that also return
// a created object need the leading nil.
func NilReturn(args []*Arg) string {
	if NewInterface(args) == "" {
		return ""
	}
	return "nil, "
}

func HasFD(args []*Arg) bool {
	for _, arg := range args {
		if arg.Type == "fd" {
			return true
		}
	}
	return false
}

func EvtSignature(args []*Arg) string {
	argSigs := make([]string, 0)
	for _, arg := range args {
		name := ArgName(arg)
		switch arg.Type {
		case "int":
			argSigs = append(argSigs, name+" int32")
		case "uint", "object", "new_id":
			argSigs = append(argSigs, name+" uint32")
		case "fixed":
			argSigs = append(argSigs, name+" float64")
		case "string":
			argSigs = append(argSigs, name+" string")
		case "array":
			argSigs = append(argSigs, name+" []byte")
		case "fd":
			argSigs = append(argSigs, name+" *os.File")
		}
	}
	return strings.Join(argSigs, ", ")
}

func EvtCall(args []*Arg) string {
	argSigs := make([]string, 0)
	for _, arg := range args {
		argSigs = append(argSigs, ArgName(arg))
	}
	return strings.Join(argSigs, ", ")
}

// EvtDecodable reports whether the event needs a payload buffer, i.e. it
// carries anything besides file descriptors.
func EvtDecodable(args []*Arg) bool {
	for _, arg := range args {
		if arg.Type != "fd" {
			return true
		}
	}
	return false
}

// NeedsLen reports whether any event in the interface decodes a string or
// array, which share the function-scoped len temporary.
func NeedsLen(events []*Event) bool {
	for _, ev := range events {
		for _, arg := range ev.Args {
			if arg.Type == "string" || arg.Type == "array" {
				return true
			}
		}
	}
	return false
}

func ArgDecode(args []*Arg) string {
	buf := &bytes.Buffer{}
	for _, arg := range args {
		name := ArgName(arg)
		switch arg.Type {
		case "int":
			fmt.Fprintf(buf, "\t\t\t%s := int32(hostByteOrder.Uint32(buf.Next(4)))\n", name)
		case "uint", "object", "new_id":
			fmt.Fprintf(buf, "\t\t\t%s := hostByteOrder.Uint32(buf.Next(4))\n", name)
		case "fixed":
			fmt.Fprintf(buf, "\t\t\t%s := fixedToFloat64(int32(hostByteOrder.Uint32(buf.Next(4))))\n", name)
		case "string":
			buf.WriteString("\t\t\tlen = int(hostByteOrder.Uint32(buf.Next(4)))\n")
			fmt.Fprintf(buf, "\t\t\t%s := string(buf.Next(len)[:len-1])\n", name)
			buf.WriteString("\t\t\tif len%4 != 0 {\n")
			buf.WriteString("\t\t\t\tbuf.Next(4 - (len % 4))\n")
			buf.WriteString("\t\t\t}\n")
		case "array":
			buf.WriteString("\t\t\tlen = int(hostByteOrder.Uint32(buf.Next(4)))\n")
			fmt.Fprintf(buf, "\t\t\t%s := make([]byte, len)\n", name)
			fmt.Fprintf(buf, "\t\t\tbuf.Read(%s)\n", name)
			buf.WriteString("\t\t\tif len%4 != 0 {\n")
			buf.WriteString("\t\t\t\tbuf.Next(4 - (len % 4))\n")
			buf.WriteString("\t\t\t}\n")
		case "fd":
			fmt.Fprintf(buf, "\t\t\t%s := file\n", name)
		default:
			return ""
		}
	}
	return buf.String()
}

func ArgEncode(args []*Arg) string {
	buf := &bytes.Buffer{}
	for _, arg := range args {
		name := ArgName(arg)
		switch arg.Type {
		case "int", "uint", "object":
			fmt.Fprintf(buf, "\tbinary.Write(this.c.buf, hostByteOrder, %s)\n", name)
		case "new_id":
			if arg.Interface == "" {
				writeStringEncode(buf, "iface")
				buf.WriteString("\tbinary.Write(this.c.buf, hostByteOrder, version)\n")
				fmt.Fprintf(buf, "\tbinary.Write(this.c.buf, hostByteOrder, %s)\n", name)
			} else {
				ni := InterfaceName(arg.Interface)
				fmt.Fprintf(buf, "\tret := new%s(this.c).(*%s)\n", ni, ni)
				buf.WriteString("\tbinary.Write(this.c.buf, hostByteOrder, ret.i)\n")
			}
		case "fixed":
			fmt.Fprintf(buf, "\tbinary.Write(this.c.buf, hostByteOrder, float64ToFixed(%s))\n", name)
		case "string":
			writeStringEncode(buf, name)
		case "array":
			fmt.Fprintf(buf, "\tbinary.Write(this.c.buf, hostByteOrder, uint32(len(%s)))\n", name)
			fmt.Fprintf(buf, "\tthis.c.buf.Write(%s)\n", name)
			fmt.Fprintf(buf, "\tif len(%s)%%4 != 0 {\n", name)
			fmt.Fprintf(buf, "\t\tthis.c.buf.Write(make([]byte, 4-len(%s)%%4))\n", name)
			buf.WriteString("\t}\n")
		case "fd":
			// Sent out of band via SCM_RIGHTS, nothing lands in the buffer.
		default:
			return ""
		}
	}
	return buf.String()
}

// Wire strings are length-prefixed, NUL-terminated, and padded to 32 bits.
// The length field counts the terminator.
func writeStringEncode(buf *bytes.Buffer, name string) {
	fmt.Fprintf(buf, "\tbinary.Write(this.c.buf, hostByteOrder, uint32(len(%s)+1))\n", name)
	fmt.Fprintf(buf, "\tthis.c.buf.WriteString(%s)\n", name)
	buf.WriteString("\tthis.c.buf.WriteByte(0)\n")
	fmt.Fprintf(buf, "\tif (len(%s)+1)%%4 != 0 {\n", name)
	fmt.Fprintf(buf, "\t\tthis.c.buf.Write(make([]byte, 4-(len(%s)+1)%%4))\n", name)
	buf.WriteString("\t}\n")
}

func generate(tmpl *template.Template, path string, outDir string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "unable to read protocol xml")
	}
	p, err := parse(raw)
	if err != nil {
		return err
	}
	gf := &genFile{Protocol: p}
	for _, i := range p.Interfaces {
		if len(i.Events) == 0 {
			continue
		}
		gf.NeedsLogrus = true
		for _, ev := range i.Events {
			if EvtDecodable(ev.Args) {
				gf.NeedsBytes = true
			}
		}
	}
	buf := &bytes.Buffer{}
	if err := tmpl.ExecuteTemplate(buf, "root", gf); err != nil {
		return errors.Wrap(err, "template execution failed")
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return errors.Wrap(err, "generated bindings do not parse")
	}
	name := strings.TrimSuffix(filepath.Base(path), ".xml") + ".go"
	err = os.WriteFile(filepath.Join(outDir, name), out, 0644)
	return errors.Wrap(err, "unable to write bindings")
}

func main() {
	outDir := flag.String("out", ".", "directory generated bindings are written to")
	flag.Parse()
	if flag.NArg() == 0 {
		logrus.Fatalln("no protocol xml files given")
	}
	tmpl := genTemplate(wlpTemplate)
	for _, path := range flag.Args() {
		if err := generate(tmpl, path, *outDir); err != nil {
			logrus.WithError(err).WithField("protocol", path).Fatalln("generation failed")
		}
		logrus.WithField("protocol", path).Infoln("bindings generated")
	}
}
