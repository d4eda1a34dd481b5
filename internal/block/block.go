package block

// Type identifies what occupies a cell. The zero value is Air.
type Type uint16

const (
	Air Type = iota
	Stone
	Dirt
	Grass
	Bedrock
	Sand
)

var names = [...]string{
	Air:     "air",
	Stone:   "stone",
	Dirt:    "dirt",
	Grass:   "grass",
	Bedrock: "bedrock",
	Sand:    "sand",
}

// String returns the block name, or "unknown" for unregistered values.
func (t Type) String() string {
	if int(t) < len(names) {
		return names[t]
	}
	return "unknown"
}

// IsSolid is the meshing predicate: every known block except air.
func IsSolid(t Type) bool {
	return t != Air && int(t) < len(names)
}

// IsAir reports whether t is empty space.
func IsAir(t Type) bool {
	return t == Air
}
