package cache

// Keyer builds cache keys for pipeline stages.
type Keyer interface {
	// LayoutKey identifies the layout of one family.
	LayoutKey(familyHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies one rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds the options a family layout depends on.
type LayoutKeyOpts struct {
	Seed uint64 `json:"seed"`
}

// ArtifactKeyOpts holds the options a rendered artifact depends on.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Detailed bool    `json:"detailed,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(familyHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", familyHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
