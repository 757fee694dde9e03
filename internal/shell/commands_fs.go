package shell

import (
	"fmt"
	"strings"
)

// listing is the simulated project directory shown by ls.
var listing = []string{
	"src/", "public/", "package.json", "vite.config.ts",
	"tailwind.config.ts", "README.md", ".env", ".gitignore", "server.js",
}

func cmdLs(cmd Command, _ *Environment) Result {
	if !hasShortFlag(cmd.Args, 'l') {
		return Single(KindOutput, strings.Join(listing, "  "))
	}
	date := now().Format("1/2/2006")
	lines := []Line{{Kind: KindOutput, Text: fmt.Sprintf("total %d", len(listing))}}
	for _, f := range listing {
		perm, size := "-rw-r--r--", "1024"
		if strings.HasSuffix(f, "/") {
			perm, size = "drwxr-xr-x", "4096"
		}
		lines = append(lines, Line{
			Kind: KindOutput,
			Text: fmt.Sprintf("%s  1 nabila nabila  %s %s %s", perm, size, date, f),
		})
	}
	return Lines(lines...)
}

// hasShortFlag reports whether a single-dash cluster such as -la carries
// flag. Long options never match.
func hasShortFlag(args []string, flag rune) bool {
	for _, a := range args {
		if len(a) < 2 || a[0] != '-' || a[1] == '-' {
			continue
		}
		if strings.ContainsRune(a[1:], flag) {
			return true
		}
	}
	return false
}

func cmdPwd(_ Command, env *Environment) Result {
	return Single(KindOutput, env.WorkingDir())
}

func cmdCat(cmd Command, env *Environment) Result {
	if len(cmd.Args) == 0 {
		return Errorf("cat: missing file operand")
	}
	lines := make([]Line, 0, len(cmd.Args))
	for _, name := range cmd.Args {
		content, ok := env.ReadFile(name)
		if !ok {
			lines = append(lines, Line{Kind: KindError, Text: fmt.Sprintf("cat: %s: No such file or directory", name)})
			continue
		}
		lines = append(lines, Line{Kind: KindOutput, Text: content})
	}
	return Lines(lines...)
}

func cmdEcho(cmd Command, _ *Environment) Result {
	return Single(KindOutput, strings.Join(cmd.Args, " "))
}

func cmdMkdir(cmd Command, _ *Environment) Result {
	if len(cmd.Args) == 0 {
		return Errorf("mkdir: missing operand")
	}
	lines := make([]Line, len(cmd.Args))
	for i, dir := range cmd.Args {
		lines[i] = Line{Kind: KindSuccess, Text: "Directory created: " + dir}
	}
	return Lines(lines...)
}

func cmdTouch(cmd Command, _ *Environment) Result {
	if len(cmd.Args) == 0 {
		return Errorf("touch: missing file operand")
	}
	lines := make([]Line, len(cmd.Args))
	for i, f := range cmd.Args {
		lines[i] = Line{Kind: KindSuccess, Text: "File created: " + f}
	}
	return Lines(lines...)
}

// cmdCd only reports; the working directory is fixed for the session.
func cmdCd(cmd Command, _ *Environment) Result {
	target := cmd.Arg(0)
	if target == "" {
		target = "~"
	}
	return Single(KindSuccess, "Changed directory to: "+target)
}

func cmdView(cmd Command, env *Environment) Result {
	name := cmd.Arg(0)
	if name == "" {
		return Errorf("view: missing file operand")
	}
	if _, ok := env.ReadFile(name); !ok {
		return Errorf("view: %s: No such file or directory", name)
	}
	return Single(KindInfo, "opening "+name)
}
