package instance

import "math/rand"

var placeholders = []string{
	"dirt hut society",
	"creeper spa services",
	"enderman moving crew",
	"lava bucket ministry",
	"lost coordinates club",
	"cursed redstone museum",
	"fall damage academy",
	"ethical skeleton range",
	"tnt duplication bureau",
	"overclocked smelter lab",
	"quantum potato reactor",
	"buzzing flux capacitor",
	"automation ethics office",
	"teleportation mishap lab",
	"lag machine engineers",
	"forgot manual reactor",
	"dont dig down",
	"professional tree punchers",
	"mostly cobble kingdom",
	"accidental pigmen union",
	"permanent afk village",
	"unorganized chest nation",
	"accidental wolf slappers",
	"lost base expedition",
}

// Placeholder returns a random suggestion for the name field of the create form
func Placeholder() string {
	return placeholders[rand.Intn(len(placeholders))]
}
