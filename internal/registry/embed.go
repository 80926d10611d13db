package registry

import _ "embed"

//go:embed chains/shield-1.json
var shield1 []byte

// Default loads the registry dataset embedded for the shield-1 chain.
func Default() (*Registry, error) {
	return Load(shield1)
}
