package res_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/resloader/pkg/res"
)

func ExampleParseRText() {
	symbols, err := res.ParseRText(strings.NewReader(`
int string app_name 0x7f040000
int layout main 0x7f030000
int[] styleable MyView { 0x7f010000 }
`), "com.example.app")
	if err != nil {
		panic(err)
	}

	id, _ := symbols.Lookup(res.TypeString, "app_name")
	fmt.Printf("0x%08x %d\n", id, symbols.Len())
	// Output: 0x7f040000 2
}

func ExampleParseReference() {
	n, ok := res.ParseReference("@android:string/ok")
	fmt.Println(n, ok, n.IsSystem())

	_, ok = res.ParseReference("@null")
	fmt.Println(ok)
	// Output:
	// android:string/ok true true
	// false
}

func ExampleParseColor() {
	for _, s := range []string{"#f00", "#80ff0000", "white"} {
		c, _ := res.ParseColor(s)
		fmt.Printf("%s -> 0x%08X\n", s, c)
	}
	// Output:
	// #f00 -> 0xFFFF0000
	// #80ff0000 -> 0x80FF0000
	// white -> 0xFFFFFFFF
}
