package catalog

import "strings"

// Platform identifies a distribution client or one of the synthetic views
// (favourites, all, hidden, search, new, not installed).
type Platform int

// Values are persisted by name, but the numbering is kept stable so older
// exports that stored the number still resolve.
const (
	Unknown      Platform = -1
	Favourites   Platform = 0
	Custom       Platform = 1
	All          Platform = 2
	Steam        Platform = 3
	GOG          Platform = 4
	Ubisoft      Platform = 5
	EA           Platform = 6
	Epic         Platform = 7
	Bethesda     Platform = 8
	Battlenet    Platform = 9
	Rockstar     Platform = 10
	Hidden       Platform = 11
	Search       Platform = 12
	Amazon       Platform = 13
	BigFish      Platform = 14
	Arc          Platform = 15
	Itch         Platform = 16
	Paradox      Platform = 17
	Plarium      Platform = 18
	Twitch       Platform = 19
	Wargaming    Platform = 20
	IGClient     Platform = 21
	NewGames     Platform = 22
	NotInstalled Platform = 23
	Microsoft    Platform = 24
	Oculus       Platform = 25
	Legacy       Platform = 26
	Riot         Platform = 27
	GameJolt     Platform = 28
	Humble       Platform = 29
	RobotCache   Platform = 30
)

type platformInfo struct {
	p    Platform
	key  string
	name string
	view bool
}

var platformTable = []platformInfo{
	{Unknown, "unknown", "Unknown", false},
	{Favourites, "favourites", "Favourites", true},
	{Custom, "custom", "Custom games", false},
	{All, "all", "All games", true},
	{Steam, "steam", "Steam", false},
	{GOG, "gog", "GOG Galaxy", false},
	{Ubisoft, "ubisoft", "Ubisoft Connect", false},
	{EA, "ea", "EA", false},
	{Epic, "epic", "Epic", false},
	{Bethesda, "bethesda", "Bethesda.net", false},
	{Battlenet, "battlenet", "Battle.net", false},
	{Rockstar, "rockstar", "Rockstar", false},
	{Hidden, "hidden", "Hidden games", true},
	{Search, "search", "Search results", true},
	{Amazon, "amazon", "Amazon", false},
	{BigFish, "bigfish", "Big Fish", false},
	{Arc, "arc", "Arc", false},
	{Itch, "itch", "itch", false},
	{Paradox, "paradox", "Paradox", false},
	{Plarium, "plarium", "Plarium Play", false},
	{Twitch, "twitch", "Twitch", false},
	{Wargaming, "wargaming", "Wargaming.net", false},
	{IGClient, "igclient", "Indiegala Client", false},
	{NewGames, "new", "New games", true},
	{NotInstalled, "notinstalled", "Not installed", true},
	{Microsoft, "microsoft", "Microsoft Store", false},
	{Oculus, "oculus", "Oculus", false},
	{Legacy, "legacy", "Legacy", false},
	{Riot, "riot", "Riot Client", false},
	{GameJolt, "gamejolt", "Game Jolt Client", false},
	{Humble, "humble", "Humble App", false},
	{RobotCache, "robotcache", "RobotCache", false},
}

var (
	platformByValue = map[Platform]platformInfo{}
	platformByName  = map[string]Platform{}
	platformByKey   = map[string]Platform{}
)

func init() {
	for _, info := range platformTable {
		platformByValue[info.p] = info
		platformByName[info.name] = info.p
		platformByKey[info.key] = info.p
	}
}

// String returns the display name.
func (p Platform) String() string {
	if info, ok := platformByValue[p]; ok {
		return info.name
	}
	return platformByValue[Unknown].name
}

// Key returns the lowercase identifier used in config files and flags.
func (p Platform) Key() string {
	if info, ok := platformByValue[p]; ok {
		return info.key
	}
	return platformByValue[Unknown].key
}

// IsView reports whether p is a synthetic grouping rather than a client.
func (p Platform) IsView() bool {
	return platformByValue[p].view
}

// ParsePlatform resolves a display name or key. A trailing ": count" suffix,
// as printed by the platform menu, is ignored. Unrecognised input yields
// Unknown.
func ParsePlatform(s string) Platform {
	if i := strings.IndexByte(s, ':'); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(s)
	if p, ok := platformByName[s]; ok {
		return p
	}
	lower := strings.ToLower(s)
	if p, ok := platformByKey[lower]; ok {
		return p
	}
	for _, info := range platformTable {
		if strings.EqualFold(info.name, s) {
			return info.p
		}
	}
	return Unknown
}

// Platforms returns every real client platform in table order.
func Platforms() []Platform {
	var out []Platform
	for _, info := range platformTable {
		if info.view || info.p == Unknown {
			continue
		}
		out = append(out, info.p)
	}
	return out
}

// Views returns the synthetic views in menu order.
func Views() []Platform {
	return []Platform{Search, Favourites, NewGames, All, Hidden, NotInstalled}
}
