package main

import (
	"bytes"
	"go/format"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testProtocol = `<protocol name="test">
  <interface name="wl_widget" version="3">
    <description summary="test widget">
      A widget for exercising the generator.

      It has one of everything the real protocols use.
    </description>
    <enum name="mode">
      <entry name="plain" value="0" summary="no frills"/>
      <entry name="fancy" value="1"/>
    </enum>
    <request name="destroy" type="destructor"></request>
    <request name="set_label">
      <arg name="label" type="string"/>
    </request>
    <request name="create_child">
      <arg name="id" type="new_id" interface="wl_gadget"/>
      <arg name="kind" type="uint"/>
    </request>
    <request name="share">
      <arg name="fd" type="fd"/>
      <arg name="size" type="int"/>
    </request>
    <event name="moved">
      <arg name="x" type="fixed"/>
      <arg name="y" type="fixed"/>
    </event>
    <event name="named">
      <arg name="name" type="string"/>
      <arg name="tags" type="array"/>
    </event>
  </interface>
  <interface name="wl_gadget" version="1">
    <request name="destroy" type="destructor"></request>
  </interface>
</protocol>`

func TestParse(t *testing.T) {
	p, err := parse([]byte(testProtocol))
	assert.NoError(t, err)
	assert.Equal(t, "test", p.Name)
	assert.Len(t, p.Interfaces, 2)

	widget := p.Interfaces[0]
	assert.Equal(t, "wl_widget", widget.Name)
	assert.Equal(t, "3", widget.Version)
	assert.Len(t, widget.Requests, 4)
	assert.Len(t, widget.Events, 2)
	assert.Equal(t, "destructor", widget.Requests[0].Type)
	assert.Equal(t, "new_id", widget.Requests[2].Args[0].Type)
	assert.Equal(t, "wl_gadget", widget.Requests[2].Args[0].Interface)
	assert.Len(t, widget.Enums, 1)
	assert.Equal(t, "no frills", widget.Enums[0].Entries[0].Summary)
}

func TestInterfaceName(t *testing.T) {
	assert.Equal(t, "Compositor", InterfaceName("wl_compositor"))
	assert.Equal(t, "ShmPool", InterfaceName("wl_shm_pool"))
	assert.Equal(t, "XdgWmBase", InterfaceName("xdg_wm_base"))
	assert.Equal(t, "ZwlrLayerShellV1", InterfaceName("zwlr_layer_shell_v1"))
	assert.Equal(t, "OrgKdeKwinBlur", InterfaceName("org_kde_kwin_blur"))
}

func TestRequestSignatures(t *testing.T) {
	typed := []*Arg{
		{Name: "id", Type: "new_id", Interface: "wl_gadget"},
		{Name: "kind", Type: "uint"},
	}
	assert.Equal(t, "l GadgetListener, kind uint32", ReqSignature(typed))
	assert.Equal(t, "(*Gadget, error)", ReqReturnSignature(typed))
	assert.Equal(t, "ret, nil", ReqReturn(typed))
	assert.Equal(t, "nil, ", NilReturn(typed))

	untyped := []*Arg{
		{Name: "name", Type: "uint"},
		{Name: "id", Type: "new_id"},
	}
	assert.Equal(t, "name uint32, iface string, version uint32, id uint32", ReqSignature(untyped))
	assert.Equal(t, "error", ReqReturnSignature(untyped))
	assert.Equal(t, "nil", ReqReturn(untyped))
	assert.Equal(t, "", NilReturn(untyped))
}

func TestDescriptionToComment(t *testing.T) {
	got := DescriptionToComment("first line\n\n  second line  ")
	assert.Equal(t, "// first line\n//\n// second line\n", got)
}

func TestGenerateFormats(t *testing.T) {
	p, err := parse([]byte(testProtocol))
	assert.NoError(t, err)

	gf := &genFile{Protocol: p, NeedsBytes: true, NeedsLogrus: true}
	tmpl := genTemplate(wlpTemplate)
	buf := &bytes.Buffer{}
	assert.NoError(t, tmpl.ExecuteTemplate(buf, "root", gf))

	out, err := format.Source(buf.Bytes())
	assert.NoError(t, err, "generated code must parse: %s", buf.String())

	src := string(out)
	assert.Contains(t, src, `registerConstructor("wl_widget", 3, newWidget)`)
	assert.Contains(t, src, "func (this *Widget) CreateChild(l GadgetListener, kind uint32) (*Gadget, error)")
	assert.Contains(t, src, "oob := this.c.encodeFD(fd)")
	assert.Contains(t, src, "name := string(buf.Next(len)[:len-1])")
	assert.Contains(t, src, "WidgetModePlain = 0 // no frills")
	assert.Contains(t, src, "this.l.Moved(x, y)")
	assert.Contains(t, src, "// GadgetListener is empty; wl_gadget has no events.")
}
