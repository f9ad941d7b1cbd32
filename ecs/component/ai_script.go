package component

// AIScript points an enemy at a tengo script that adjusts its AIState each
// frame before the native behaviour runs.
type AIScript struct {
	Path     string
	Disabled bool
}

var AIScriptComponent = NewComponent[AIScript]()
