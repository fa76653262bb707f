// Package pkg provides the core libraries for resloader, a resource loader
// and resolver for Android-style resource trees.
//
// # Overview
//
// resloader reads a project's symbol table (R.txt or TOML), walks its res/
// directories together with any library bundles and the platform SDK, and
// answers the questions an application asks at runtime: what string, plural,
// array or color does this id name, what does this layout inflate to, which
// frames make up this animation. The pkg directory is organized as:
//
//  1. [res] - The resolution engine: symbol tables, the id index, per-type
//     loaders and inflation
//  2. [sdk] - Discovery of the platform resource directory
//  3. [config] - Project configuration (TOML file plus environment)
//  4. [cache] - Persistent cache for SDK discovery results
//  5. [render] - Text, DOT, SVG, PNG and PDF output for inflated trees
//  6. [export] - SQLite snapshots of every resolved value
//
// # Architecture
//
// The typical data flow:
//
//	resloader.toml + R.txt
//	         ↓
//	    [config] + [res.LoadSymbols]
//	         ↓
//	    [res.Engine] (system bundle, libraries, application)
//	         ↓
//	    values / inflated nodes
//	         ↓
//	    [render] or [export]
//
// # Quick Start
//
//	symbols, _ := res.LoadSymbols("R.txt", "com.example.app")
//	engine := res.New(symbols, nil, res.Config{
//	    ResourceDir: "app/src/main/res",
//	    Locale:      "fr",
//	})
//	if err := engine.Init(ctx); err != nil {
//	    return err
//	}
//
//	id, _ := engine.IDForName("com.example.app:string/app_name")
//	name, _ := engine.String(id)
//
//	layout, _ := engine.IDForName("com.example.app:layout/main")
//	root, _ := engine.InflateView(layout, nil)
//	fmt.Print(render.Tree(root, render.Options{Attrs: true}))
//
// # Errors
//
// Every package returns [errors.Error] values carrying a stable code, so
// callers can branch with errors.Is(err, errors.ErrCodeNotFound) without
// matching message text.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/res/...      # Engine only
//	go test -run Example       # Examples only
//
// [res]: https://pkg.go.dev/github.com/matzehuels/resloader/pkg/res
// [sdk]: https://pkg.go.dev/github.com/matzehuels/resloader/pkg/sdk
// [config]: https://pkg.go.dev/github.com/matzehuels/resloader/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/resloader/pkg/cache
// [render]: https://pkg.go.dev/github.com/matzehuels/resloader/pkg/render
// [export]: https://pkg.go.dev/github.com/matzehuels/resloader/pkg/export
// [errors.Error]: https://pkg.go.dev/github.com/matzehuels/resloader/pkg/errors#Error
// [res.LoadSymbols]: https://pkg.go.dev/github.com/matzehuels/resloader/pkg/res#LoadSymbols
// [res.Engine]: https://pkg.go.dev/github.com/matzehuels/resloader/pkg/res#Engine
package pkg
