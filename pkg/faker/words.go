package faker

// words backs Word.
var words = []string{
	"account", "action", "agent", "alpha", "amber", "anchor", "apex", "arrow",
	"atlas", "aurora", "badge", "basin", "beacon", "birch", "blossom", "bolt",
	"breeze", "bridge", "canyon", "carbon", "cedar", "circle", "clover", "comet",
	"coral", "cosmos", "crystal", "dawn", "delta", "desert", "drift", "ember",
	"falcon", "fern", "field", "flint", "forest", "frost", "galaxy", "garden",
	"glacier", "granite", "harbor", "hazel", "horizon", "island", "ivory", "jade",
	"jasmine", "juniper", "lagoon", "lantern", "lotus", "maple", "marble", "meadow",
	"mesa", "meteor", "mirror", "monarch", "nebula", "oasis", "ocean", "orbit",
	"orchid", "pebble", "pioneer", "planet", "prairie", "prism", "quartz", "radiant",
	"raven", "reef", "ridge", "river", "saffron", "sage", "savanna", "shadow",
	"sierra", "silver", "summit", "thunder", "timber", "topaz", "tundra", "valley",
	"velvet", "vista", "willow", "zenith",
}

// nouns backs Noun and is used for map keys.
var nouns = []string{
	"driver", "protocol", "bandwidth", "panel", "microchip", "program", "port",
	"card", "array", "interface", "system", "sensor", "firewall", "pixel", "alarm",
	"feed", "monitor", "application", "transmitter", "bus", "circuit", "capacitor",
	"matrix", "socket", "kernel", "cache", "buffer", "router", "compiler",
}
