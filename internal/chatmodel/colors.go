package chatmodel

import "strings"

// ansiColorCodes maps the 16 names in ValidColors to the ANSI color
// index lipgloss.Color expects.
var ansiColorCodes = map[string]string{
	"black": "0", "red": "1", "green": "2", "yellow": "3",
	"blue": "4", "magenta": "5", "cyan": "6", "white": "7",
	"gray": "8", "bright-red": "9", "bright-green": "10", "bright-yellow": "11",
	"bright-blue": "12", "bright-magenta": "13", "bright-cyan": "14", "bright-white": "15",
}

func ansiColorCode(name string) string {
	if code, ok := ansiColorCodes[strings.ToLower(name)]; ok {
		return code
	}
	return ansiColorCodes["blue"]
}
