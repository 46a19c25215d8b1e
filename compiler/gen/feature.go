package gen

import "fmt"

var (
	// FeatureEnvisage adds the Envisage model browser to the application.
	FeatureEnvisage = Feature{
		Name:        "envisage",
		Stage:       Beta,
		Description: "Envisage opens a visual browser of the application model on startup",
	}

	// FeatureJmx exposes services and configuration over JMX.
	FeatureJmx = Feature{
		Name:        "jmx",
		Stage:       Stable,
		Description: "Exposes services and their configuration as JMX MBeans",
		Layer:       LayerInfrastructure,
		Module:      "JmxModule",
	}

	// FeatureMixinScripting allows mixins to be implemented in scripting languages.
	FeatureMixinScripting = Feature{
		Name:        "mixin scripting",
		Stage:       Experimental,
		Description: "Allows mixin methods to be implemented in JavaScript, Groovy or other JSR-223 languages",
		Layer:       LayerInfrastructure,
		Module:      "ScriptingModule",
	}

	// FeatureSecurity adds authentication and authorization.
	FeatureSecurity = Feature{
		Name:        "security",
		Stage:       Stable,
		Description: "Adds Shiro based authentication and authorization to the application",
		Layer:       LayerInfrastructure,
		Module:      "SecurityModule",
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureEnvisage,
		FeatureJmx,
		FeatureMixinScripting,
		FeatureSecurity,
	}
)

// FeatureStage describes the stage of a generated feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features generate code that may not compile against every
	// entity store.
	Experimental

	// Beta features are complete but their generated layout may still change.
	Beta

	// Stable features are used by generated applications in production.
	Stable
)

// String returns the stage name.
func (s FeatureStage) String() string {
	switch s {
	case Experimental:
		return "experimental"
	case Beta:
		return "beta"
	case Stable:
		return "stable"
	default:
		return fmt.Sprintf("FeatureStage(%d)", int(s))
	}
}

// A Feature is an optional part of the generated application.
type Feature struct {
	// Name of the feature, as stored in the model.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string

	// Layer and Module name the bootstrap module the feature contributes.
	// Both are empty for features that only change existing sources.
	Layer  string
	Module string
}

// LookupFeature returns the feature with the given name.
func LookupFeature(name string) (Feature, bool) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}
