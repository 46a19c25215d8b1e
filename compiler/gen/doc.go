// Package gen projects a loaded model into a Polygene project tree.
//
// # Architecture
//
// The generation pipeline follows this flow:
//
//	Model document (model.json / model.yaml)
//	        ↓
//	   load.Model (ordered modules, entities, services)
//	        ↓
//	   Config (finalized choices, functional options)
//	        ↓
//	   Projection (member declarations, imports, property lines)
//	        ↓
//	   TemplateWriter (queued copies, rendered and written on Flush)
//
// # Key Types
//
//   - Config: the finalized choices of one run, read-only after NewConfig
//   - Projection: declarations and imports derived from an entity or a service
//   - TemplateWriter: renders embedded templates into the target directory
//   - Layer: a layer of the generated application and its bootstrap modules
//   - Feature: an optional feature and the bootstrap module it contributes
//
// # Error Handling
//
//   - ProjectionError: a member or property cannot be projected, fatal
//   - ConfigError: an option names a choice outside its catalog
//   - TemplateCopyError: a template could not be copied, logged and skipped
//   - GenerationError: the run could not be completed
//
// Example error handling:
//
//	if err := gen.Generate(ctx, cfg); err != nil {
//	    if gen.IsProjectionError(err) {
//	        // fix the model document
//	    }
//	    return err
//	}
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithModel(m),
//	    gen.WithEntityStore("PostgreSQL"),
//	    gen.WithFeatures("jmx"),
//	    gen.WithTarget("./shop"),
//	)
//
// # Catalogs
//
// The choices offered for every option live in catalog.yaml. catalog_gen.go
// is generated from it:
//
//	go run ./internal/gen.go
//
// # Generated Output
//
//	{target}/
//	├── settings.gradle, build.gradle, gradlew
//	├── app/         // main class and per-environment configuration
//	├── bootstrap/   // application, layer and module assemblers
//	├── model/       // entity, service and configuration composites
//	└── rest/        // Rest API application only
package gen
