package main

// wlpTemplate renders one protocol XML document into one source file under
// wl/wlp. The output is piped through go/format before being written, so the
// template only has to produce parseable Go, not pretty Go.
const wlpTemplate = `{{define "root"}}package wlp

import (
{{if .NeedsBytes}}	"bytes"
{{end}}	"encoding/binary"
	"os"

	"github.com/pkg/errors"
{{if .NeedsLogrus}}	"github.com/sirupsen/logrus"
{{end}})
{{range .Interfaces}}{{template "interface" .}}{{end}}{{end}}

{{define "interface"}}{{$if := ifname .Name}}{{$ver := .Version}}
{{range .Enums}}{{$en := camel .Name}}const (
{{range .Entries}}	{{$if}}{{$en}}{{camel .Name}} = {{.Value}}{{if .Summary}} // {{.Summary}}{{end}}
{{end}})

{{end}}{{if .Events}}const (
{{range $i, $e := .Events}}	opCode{{$if}}{{camel $e.Name}} = {{$i}}
{{end}})

{{end}}{{if .Requests}}const (
{{range $i, $r := .Requests}}	opCode{{$if}}{{camel $r.Name}} = {{$i}}
{{end}})

{{end}}{{if .Events}}// {{$if}}Listener is the event interface for {{.Name}}.
{{else}}// {{$if}}Listener is empty; {{.Name}} has no events.
{{end}}type {{$if}}Listener interface {
{{range .Events}}	{{camel .Name}}({{evt_sig .Args}})
{{end}}}

{{if .Description}}{{desc_to_comment .Description.Text}}{{end}}type {{$if}} struct {
	i uint32
	l {{$if}}Listener
	c *Context
}

func new{{$if}}(c *Context) Object {
	o := &{{$if}}{
		i: c.next(),
		c: c,
	}
	c.obj[o.i] = o
	return o
}

func init() {
	registerConstructor("{{.Name}}", {{$ver}}, new{{$if}})
}

// ID returns the wayland object identifier
func (this *{{$if}}) ID() uint32 {
	return this.i
}

// Type returns the string wayland type
func (this *{{$if}}) Type() string {
	return "{{.Name}}"
}

func (this *{{$if}}) setListener(listener interface{}) error {
	l, ok := listener.({{$if}}Listener)
	if !ok {
		return errors.Errorf("listener must implement {{$if}}Listener")
	}
	this.l = l
	return nil
}

func (this *{{$if}}) dispatch(opCode uint16, payload []byte, file *os.File) {
{{if .Events}}{{if needs_len .Events}}	var len int
	_ = len
{{end}}	switch opCode {
{{range .Events}}	case opCode{{$if}}{{camel .Name}}:
		if this.l == nil {
			logrus.Debugln("wlp: ignoring {{camel .Name}} event, no listener")
		} else {
{{if evt_decodable .Args}}			buf := bytes.NewBuffer(payload)
{{end}}{{arg_decode .Args}}			this.l.{{camel .Name}}({{evt_call .Args}})
		}
{{end}}	}
{{end}}}
{{range .Requests}}
{{if .Description}}{{desc_to_comment .Description.Text}}{{end}}func (this *{{$if}}) {{camel .Name}}({{req_sig .Args}}) {{req_ret_sig .Args}} {
	if this == nil {
		return {{nil_ret .Args}}errors.New("object is nil")
	}
	if this.c.Err != nil {
		return {{nil_ret .Args}}errors.Wrap(this.c.Err, "global wayland error")
	}
	this.c.mu.Lock()
	defer this.c.mu.Unlock()
	if _, exists := this.c.obj[this.i]; !exists {
		return {{nil_ret .Args}}errors.New("object has been deleted")
	}
	this.c.buf.Reset()
{{if has_fd .Args}}	oob := this.c.encodeFD(fd)
{{end}}	binary.Write(this.c.buf, hostByteOrder, this.i)
	binary.Write(this.c.buf, hostByteOrder, uint32(0))
{{arg_encode .Args}}	hostByteOrder.PutUint32(this.c.buf.Bytes()[4:8], uint32(this.c.buf.Len())<<16|opCode{{$if}}{{camel .Name}})
{{if new_iface .Args}}	ret.l = l
{{end}}{{if has_fd .Args}}	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), oob, nil); err != nil {
{{else}}	if _, _, err := this.c.c.WriteMsgUnix(this.c.buf.Bytes(), nil, nil); err != nil {
{{end}}		return {{nil_ret .Args}}errors.Wrap(err, "sending {{$if}}.{{camel .Name}} failed")
	}
	return {{req_ret .Args}}
}
{{end}}{{end}}`
