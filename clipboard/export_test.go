package clipboard

var Lookup = lookup
