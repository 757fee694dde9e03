package shell

import (
	"fmt"
	"strings"
)

// packageManager returns the handler shared by npm, yarn and pnpm; only the
// tool name in the output differs.
func packageManager(tool string) Handler {
	return func(cmd Command, env *Environment) Result {
		if len(cmd.Args) == 0 {
			return block(KindInfo, fmt.Sprintf(
				"%[1]s <command>\n\nUsage:\n  %[1]s install [package]\n  %[1]s run <script>\n  %[1]s list\n  %[1]s build\n  %[1]s dev",
				tool))
		}
		sub := cmd.Args[0]
		switch sub {
		case "install", "add", "i":
			return pkgInstall(env, cmd.Args[1:])
		case "run":
			return pkgRun(cmd.Arg(1))
		case "dev":
			return pkgRun("dev")
		case "build":
			return pkgRun("build")
		case "list", "ls":
			lines := []Line{{Kind: KindOutput, Text: fmt.Sprintf("%s@1.0.0 %s", ProjectName, HomeDir)}}
			if name := cmd.Arg(1); name != "" {
				if !env.Installed(name) {
					name = "(empty)"
				}
				return Lines(append(lines, Line{Kind: KindOutput, Text: "└── " + name})...)
			}
			for _, p := range env.Packages() {
				lines = append(lines, Line{Kind: KindOutput, Text: "├── " + p})
			}
			return Lines(lines...)
		case "--version", "-v":
			return Single(KindOutput, pkgVersions[tool])
		default:
			return Errorf("%s: '%s' is not a %s command", tool, sub, tool)
		}
	}
}

var pkgVersions = map[string]string{
	"npm":  "10.2.4",
	"yarn": "1.22.21",
	"pnpm": "8.14.0",
}

func pkgInstall(env *Environment, names []string) Result {
	var pkgs []string
	for _, n := range names {
		if !strings.HasPrefix(n, "-") {
			pkgs = append(pkgs, n)
		}
	}
	if len(pkgs) == 0 {
		return Lines(
			Line{Kind: KindSuccess, Text: "Installing dependencies..."},
			Line{Kind: KindSuccess, Text: "✅ All dependencies installed successfully"},
		)
	}
	lines := make([]Line, len(pkgs))
	for i, p := range pkgs {
		env.Install(p)
		lines[i] = Line{Kind: KindSuccess, Text: "✅ Successfully installed " + p}
	}
	return Lines(lines...)
}

func pkgRun(script string) Result {
	switch script {
	case "":
		return block(KindInfo, "Scripts available in "+ProjectName+":\n  dev\n    vite\n  build\n    vite build")
	case "dev":
		return Lines(
			Line{Kind: KindSuccess, Text: "🚀 Development server starting..."},
			Line{Kind: KindSuccess, Text: "  Local:   http://localhost:5173/"},
		)
	case "build":
		return Lines(
			Line{Kind: KindSuccess, Text: "📦 Building for production..."},
			Line{Kind: KindSuccess, Text: "✅ Build completed successfully"},
		)
	default:
		return Single(KindSuccess, "Running script: "+script)
	}
}
