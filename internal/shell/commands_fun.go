package shell

import (
	"math/rand/v2"
	"strings"
	"unicode/utf8"
)

const cowsayMaxWidth = 40

func cmdCowsay(cmd Command, _ *Environment) Result {
	msg := strings.Join(cmd.Args, " ")
	if msg == "" {
		msg = "Moo! Welcome to the development station."
	}
	text := wrap(msg, cowsayMaxWidth)
	width := 0
	for _, l := range text {
		width = max(width, utf8.RuneCountInString(l))
	}

	lines := []string{" " + strings.Repeat("_", width+2)}
	for i, l := range text {
		left, right := "|", "|"
		switch {
		case len(text) == 1:
			left, right = "<", ">"
		case i == 0:
			left, right = "/", "\\"
		case i == len(text)-1:
			left, right = "\\", "/"
		}
		pad := strings.Repeat(" ", width-utf8.RuneCountInString(l))
		lines = append(lines, left+" "+l+pad+" "+right)
	}
	lines = append(lines,
		" "+strings.Repeat("-", width+2),
		`        \   ^__^`,
		`         \  (oo)\_______`,
		`            (__)\       )\/\`,
		`                ||----w |`,
		`                ||     ||`,
	)
	return block(KindOutput, strings.Join(lines, "\n"))
}

// wrap breaks s into lines of at most width runes on word boundaries. Words
// longer than width get a line of their own.
func wrap(s string, width int) []string {
	var out []string
	cur := ""
	for _, w := range strings.Fields(s) {
		switch {
		case cur == "":
			cur = w
		case utf8.RuneCountInString(cur)+1+utf8.RuneCountInString(w) <= width:
			cur += " " + w
		default:
			out = append(out, cur)
			cur = w
		}
	}
	return append(out, cur)
}

// figletFont is a five row block font; '#' cells render as full blocks.
var figletFont = map[rune][5]string{
	'A': {" ### ", "#   #", "#####", "#   #", "#   #"},
	'B': {"#### ", "#   #", "#### ", "#   #", "#### "},
	'C': {" ####", "#    ", "#    ", "#    ", " ####"},
	'D': {"#### ", "#   #", "#   #", "#   #", "#### "},
	'E': {"#####", "#    ", "#### ", "#    ", "#####"},
	'F': {"#####", "#    ", "#### ", "#    ", "#    "},
	'G': {" ####", "#    ", "#  ##", "#   #", " ####"},
	'H': {"#   #", "#   #", "#####", "#   #", "#   #"},
	'I': {"#####", "  #  ", "  #  ", "  #  ", "#####"},
	'J': {"#####", "   # ", "   # ", "#  # ", " ##  "},
	'K': {"#   #", "#  # ", "###  ", "#  # ", "#   #"},
	'L': {"#    ", "#    ", "#    ", "#    ", "#####"},
	'M': {"#   #", "## ##", "# # #", "#   #", "#   #"},
	'N': {"#   #", "##  #", "# # #", "#  ##", "#   #"},
	'O': {" ### ", "#   #", "#   #", "#   #", " ### "},
	'P': {"#### ", "#   #", "#### ", "#    ", "#    "},
	'Q': {" ### ", "#   #", "# # #", "#  # ", " ## #"},
	'R': {"#### ", "#   #", "#### ", "#  # ", "#   #"},
	'S': {" ####", "#    ", " ### ", "    #", "#### "},
	'T': {"#####", "  #  ", "  #  ", "  #  ", "  #  "},
	'U': {"#   #", "#   #", "#   #", "#   #", " ### "},
	'V': {"#   #", "#   #", "#   #", " # # ", "  #  "},
	'W': {"#   #", "#   #", "# # #", "## ##", "#   #"},
	'X': {"#   #", " # # ", "  #  ", " # # ", "#   #"},
	'Y': {"#   #", " # # ", "  #  ", "  #  ", "  #  "},
	'Z': {"#####", "   # ", "  #  ", " #   ", "#####"},
	'0': {" ### ", "#  ##", "# # #", "##  #", " ### "},
	'1': {"  #  ", " ##  ", "  #  ", "  #  ", " ### "},
	'2': {" ### ", "#   #", "  ## ", " #   ", "#####"},
	'3': {"#### ", "    #", " ### ", "    #", "#### "},
	'4': {"#   #", "#   #", "#####", "    #", "    #"},
	'5': {"#####", "#    ", "#### ", "    #", "#### "},
	'6': {" ### ", "#    ", "#### ", "#   #", " ### "},
	'7': {"#####", "    #", "   # ", "  #  ", "  #  "},
	'8': {" ### ", "#   #", " ### ", "#   #", " ### "},
	'9': {" ### ", "#   #", " ####", "    #", " ### "},
	' ': {"   ", "   ", "   ", "   ", "   "},
	'!': {"#", "#", "#", " ", "#"},
	'.': {" ", " ", " ", " ", "#"},
	'-': {"    ", "    ", "####", "    ", "    "},
	'?': {" ### ", "#   #", "  ## ", "     ", "  #  "},
}

func cmdFiglet(cmd Command, _ *Environment) Result {
	text := strings.Join(cmd.Args, " ")
	if text == "" {
		text = "NABILA"
	}
	var rows [5]strings.Builder
	for i, r := range strings.ToUpper(text) {
		glyph, ok := figletFont[r]
		if !ok {
			glyph = figletFont['?']
		}
		for row := range rows {
			if i > 0 {
				rows[row].WriteByte(' ')
			}
			rows[row].WriteString(glyph[row])
		}
	}
	lines := make([]Line, len(rows))
	for i := range rows {
		s := strings.TrimRight(rows[i].String(), " ")
		lines[i] = Line{Kind: KindOutput, Text: strings.ReplaceAll(s, "#", "█")}
	}
	return Lines(lines...)
}

var fortunes = []string{
	"Talk is cheap. Show me the code. -- Linus Torvalds",
	"Programs must be written for people to read, and only incidentally for machines to execute. -- Harold Abelson",
	"Simplicity is prerequisite for reliability. -- Edsger W. Dijkstra",
	"First, solve the problem. Then, write the code. -- John Johnson",
	"Any fool can write code that a computer can understand. Good programmers write code that humans can understand. -- Martin Fowler",
	"Make it work, make it right, make it fast. -- Kent Beck",
	"The best error message is the one that never shows up. -- Thomas Fuchs",
	"Deleted code is debugged code. -- Jeff Sickel",
}

// pick chooses a fortune index; tests replace it.
var pick = rand.IntN

func cmdFortune(Command, *Environment) Result {
	return Single(KindOutput, fortunes[pick(len(fortunes))])
}
