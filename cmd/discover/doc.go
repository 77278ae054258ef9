// Command discover generates di.Type declarations for annotated Go types.
//
// Components are discovered at build time instead of by walking a source tree at
// runtime. A package marks its types with directives in the type's doc comment:
//
//	//di:component [name=<name>] [transient|singleton]
//	//di:type
//	//di:extends <GoTypeName>
//
// //di:component makes the type a registrable component. Without name= the
// component is registered under the Go type name. The default lifetime is
// singleton.
//
// //di:type declares a nominal type that is not itself a component, usually an
// abstract base that components extend so they can be resolved by that type.
//
// //di:extends sets the parent type. The parent must carry a //di: directive in
// the same package.
//
// # Constructors
//
// For a type T the generator looks for a free function New<T> with one of these
// shapes:
//
//	func NewT() *T
//	func NewT() (*T, error)
//	func NewT(opts di.Options) *T
//	func NewT(opts di.Options) (*T, error)
//
// The result type may be any type, including an interface. A component struct
// without New<T> is constructed as &T{}. A //di:type without New<T> has no
// constructor.
//
// # Output
//
// For each annotated type the generated file declares <T>Type, and it declares a
// di.Types variable (Components by default) listing all of them in an order where
// parents come first:
//
//	//go:generate go run github.com/sghaida/smartdi/cmd/discover
//
//	c := di.New()
//	err := c.Autowire(di.AutowireOptions{Scans: []di.Source{app.Components}})
//
// # Flags
//
//	-dir     package directory to scan (default ".")
//	-out     output file (default components.gen.go in -dir)
//	-config  YAML config (default discover.yaml in -dir, optional)
//
// The config file may set:
//
//	out: components.gen.go
//	source: Components
//	suffix: Type
//	import: github.com/sghaida/smartdi/di
//
// Test files and *.gen.go files are not scanned. Output is gofmt'ed and written
// atomically. Any error exits with status 1; usage errors exit with status 2.
package main
