// Package di is a name- and type-based dependency injection engine.
//
// Components are declared as nominal type tokens (see DefineType) carrying a component
// name, a lifetime and default construction options. Instances declare the fields they
// want populated ("autowire points") either with a `di:"name"` struct tag or by
// implementing Wired. A Container registers built-in instances and discovered
// component types once (Container.Autowire) and then resolves components on demand
// (Container.Get).
//
// Resolution order for a clue:
//
//   - the resolved cache, keyed by component name (or a type's own name)
//   - the registry, by name
//   - for type clues, a scan for the single registered component whose type is the
//     requested type or one of its declared subtypes
//
// Singletons are constructed during Autowire and wired once; transients are
// constructed and wired on every resolution, guarded against circular construction.
//
// Quick start
//
//	var LoggerBase = di.DefineType("Logger", nil)
//	var ServiceType = di.DefineType("Service", di.Func(newService), di.Named("service"))
//
//	c := di.New(di.WithLogger(zapLogger))
//	err := c.Autowire(di.AutowireOptions{
//		Components: map[string]any{"logger": logger},
//		Scans:      []di.Source{di.Types{ServiceType}},
//	})
//
//	svc, err := di.GetNamed[*Service](c, "service")
//
// Import
//
//	"github.com/sghaida/smartdi/di"
package di
