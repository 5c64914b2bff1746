package xslcheck

import (
	"errors"
	"strings"
	"testing"

	"github.com/speedata/xpathast"
)

var stylesheet = `<xsl:stylesheet version="2.0" xmlns:xsl="http://www.w3.org/1999/XSL/Transform">
  <xsl:template match="/">
    <out select="not an expression">
      <xsl:value-of select="count(//a)"/>
      <xsl:if test="$x = ">bad</xsl:if>
      <xsl:for-each-group select="item" group-by="@key">
        <xsl:sort select="current-grouping-key()"/>
      </xsl:for-each-group>
    </out>
  </xsl:template>
  <xsl:template match="b" mode="x"/>
</xsl:stylesheet>`

func TestCheck(t *testing.T) {
	findings, err := Check(strings.NewReader(stylesheet))
	if err != nil {
		t.Fatal(err)
	}
	testdata := []struct {
		location  string
		attribute string
		xpath     string
		ok        bool
	}{
		{"/xsl:stylesheet[1]/xsl:template[1]", "match", "/", true},
		{"/xsl:stylesheet[1]/xsl:template[1]/out[1]/xsl:value-of[1]", "select", "count(//a)", true},
		{"/xsl:stylesheet[1]/xsl:template[1]/out[1]/xsl:if[1]", "test", "$x = ", false},
		{"/xsl:stylesheet[1]/xsl:template[1]/out[1]/xsl:for-each-group[1]", "select", "item", true},
		{"/xsl:stylesheet[1]/xsl:template[1]/out[1]/xsl:for-each-group[1]", "group-by", "@key", true},
		{"/xsl:stylesheet[1]/xsl:template[1]/out[1]/xsl:for-each-group[1]/xsl:sort[1]", "select", "current-grouping-key()", true},
		{"/xsl:stylesheet[1]/xsl:template[2]", "match", "b", true},
	}
	if len(findings) != len(testdata) {
		t.Fatalf("len(findings) = %d, want %d:\n%s", len(findings), len(testdata), Summary(findings))
	}
	for i, td := range testdata {
		f := findings[i]
		if f.Location != td.location || f.Attribute != td.attribute || f.XPath != td.xpath {
			t.Errorf("finding[%d] = %s @%s %q, want %s @%s %q", i, f.Location, f.Attribute, f.XPath, td.location, td.attribute, td.xpath)
		}
		if got := f.Err == nil; got != td.ok {
			t.Errorf("finding[%d] %q parsed = %t, want %t (%v)", i, f.XPath, got, td.ok, f.Err)
		}
		if td.ok && f.Expr == nil {
			t.Errorf("finding[%d] %q has no expression", i, f.XPath)
		}
	}
	bad := Failed(findings)
	if len(bad) != 1 || !errors.Is(bad[0].Err, xpathast.ErrSyntax) {
		t.Errorf("Failed() = %v, want the xsl:if test", bad)
	}
}

func TestCheckMalformed(t *testing.T) {
	if _, err := Check(strings.NewReader("<a><b></a>")); err == nil {
		t.Errorf("Check(malformed) did not fail")
	}
}

func TestReferences(t *testing.T) {
	testdata := []struct {
		input     string
		variables []string
		functions []string
	}{
		{"$a + count($b)", []string{"a", "b"}, []string{"count"}},
		{"for $i in $list return f:g($i)", []string{"i", "list"}, []string{"f:g"}},
		{"some $x in a satisfies empty($x) or exists($x)", []string{"x"}, []string{"empty", "exists"}},
		{"text()", nil, nil},
	}
	for _, td := range testdata {
		refs := References(xpathast.MustParse(td.input))
		if !equalStrings(refs.Variables, td.variables) {
			t.Errorf("References(%s).Variables = %v, want %v", td.input, refs.Variables, td.variables)
		}
		if !equalStrings(refs.Functions, td.functions) {
			t.Errorf("References(%s).Functions = %v, want %v", td.input, refs.Functions, td.functions)
		}
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
