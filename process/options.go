package process

const (
	defaultPIDCapacity     = 1024
	maxPIDCapacity         = 64 * 1024
	defaultNameCapacity    = 64
	maxNameCapacity        = 32 * 1024
	processIDSize          = 4
)

// EnumOptions sizes the identifier buffer passed to the OS
type EnumOptions struct {
	InitialCapacity int // identifiers, not bytes
	MaxCapacity     int
}

// NameOptions sizes the module name buffer passed to the OS
type NameOptions struct {
	InitialCapacity int // bytes
	MaxCapacity     int
}

func DefaultEnumOptions() EnumOptions {
	return EnumOptions{InitialCapacity: defaultPIDCapacity, MaxCapacity: maxPIDCapacity}
}

func DefaultNameOptions() NameOptions {
	return NameOptions{InitialCapacity: defaultNameCapacity, MaxCapacity: maxNameCapacity}
}

func (o EnumOptions) normalize() EnumOptions {
	if o.InitialCapacity <= 0 {
		o.InitialCapacity = defaultPIDCapacity
	}
	if o.MaxCapacity < o.InitialCapacity {
		o.MaxCapacity = max(maxPIDCapacity, o.InitialCapacity)
	}
	return o
}

func (o NameOptions) normalize() NameOptions {
	if o.InitialCapacity <= 0 {
		o.InitialCapacity = defaultNameCapacity
	}
	if o.MaxCapacity < o.InitialCapacity {
		o.MaxCapacity = max(maxNameCapacity, o.InitialCapacity)
	}
	return o
}
