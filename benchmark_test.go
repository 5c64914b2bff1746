package xpathast

import (
	"fmt"
	"strings"
	"testing"
)

var benchExpressions = []struct {
	name string
	expr string
}{
	{"Name", "a"},
	{"Path", "/root/sub/subsub"},
	{"Descendant", "//sub[@foo = 'bar']"},
	{"Arithmetic", "1 + 2 * 3 - 4 div 5 idiv 6 mod 7"},
	{"Function", "concat(string(@id), '-', normalize-space(.))"},
	{"For", "for $i in 1 to 10 return $i * $i"},
	{"Quantified", "some $x in //a, $y in //b satisfies $x is $y"},
	{"Types", "$x instance of element(a, xs:string?)* and $y castable as xs:integer"},
}

// generateBenchExpr builds a path with n steps, each with a predicate.
func generateBenchExpr(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "/child%d[@id = %d]", i, i)
	}
	return sb.String()
}

func BenchmarkParse(b *testing.B) {
	for _, bm := range benchExpressions {
		b.Run(bm.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := Parse(bm.expr); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkParseLongPath(b *testing.B) {
	for _, n := range []int{10, 100} {
		expr := generateBenchExpr(n)
		b.Run(fmt.Sprintf("Steps%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := Parse(expr); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkParseNested(b *testing.B) {
	expr := strings.Repeat("(", 50) + "1" + strings.Repeat(")", 50)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(expr); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseError(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Parse("a[b = (1, 2"); err == nil {
			b.Fatal("expected an error")
		}
	}
}
