package shell

import (
	"fmt"
	"strings"
)

// builtins is the station's command table in registration order, which is
// also the order completion reports names in.
func builtins(r *Registry) []Entry {
	return []Entry{
		{Name: "help", Group: GroupSystem, Usage: "help [command]", Summary: "Show this help", Handler: helpHandler(r)},
		{Name: "clear", Group: GroupSystem, Usage: "clear", Summary: "Clear terminal", Handler: func(Command, *Environment) Result { return Clear() }},
		{Name: "ls", Aliases: []string{"dir"}, Group: GroupFiles, Usage: "ls [-l]", Summary: "List directory contents", Handler: cmdLs},
		{Name: "pwd", Group: GroupFiles, Usage: "pwd", Summary: "Show current directory", Handler: cmdPwd},
		{Name: "whoami", Group: GroupSystem, Usage: "whoami", Summary: "Current user", Handler: cmdWhoami},
		{Name: "date", Group: GroupSystem, Usage: "date", Summary: "Current date/time", Handler: cmdDate},
		{Name: "neofetch", Group: GroupSystem, Usage: "neofetch", Summary: "System information", Handler: cmdNeofetch},
		{Name: "git", Group: GroupDev, Usage: "git <command>", Summary: "Git version control", Handler: cmdGit},
		{Name: "npm", Group: GroupDev, Usage: "npm <command>", Summary: "Node Package Manager", Handler: packageManager("npm")},
		{Name: "yarn", Group: GroupDev, Usage: "yarn <command>", Summary: "Yarn Package Manager", Handler: packageManager("yarn")},
		{Name: "pnpm", Group: GroupDev, Usage: "pnpm <command>", Summary: "pnpm Package Manager", Handler: packageManager("pnpm")},
		{Name: "node", Group: GroupDev, Usage: "node [file]", Summary: "Run JavaScript", Handler: cmdNode},
		{Name: "python3", Aliases: []string{"python"}, Group: GroupDev, Usage: "python3 [file]", Summary: "Run Python", Handler: cmdPython},
		{Name: "vercel", Group: GroupCloud, Usage: "vercel <cmd>", Summary: "Vercel deployment", Handler: cmdVercel},
		{Name: "supabase", Group: GroupCloud, Usage: "supabase <cmd>", Summary: "Supabase backend", Handler: cmdSupabase},
		{Name: "cat", Group: GroupFiles, Usage: "cat <file>", Summary: "Display file content", Handler: cmdCat},
		{Name: "echo", Group: GroupSystem, Usage: "echo <text>", Summary: "Print text", Handler: cmdEcho},
		{Name: "mkdir", Group: GroupFiles, Usage: "mkdir <name>", Summary: "Create directory", Handler: cmdMkdir},
		{Name: "cd", Group: GroupFiles, Usage: "cd <dir>", Summary: "Change directory", Handler: cmdCd},
		{Name: "touch", Group: GroupFiles, Usage: "touch <file>", Summary: "Create file", Handler: cmdTouch},
		{Name: "view", Group: GroupFiles, Usage: "view <file>", Summary: "Render a document", Handler: cmdView},
		{Name: "docker", Group: GroupCloud, Usage: "docker <cmd>", Summary: "Docker containers", Handler: cmdDocker},
		{Name: "code", Group: GroupDev, Usage: "code [path]", Summary: "Open VS Code", Handler: cmdCode},
		{Name: "uname", Group: GroupSystem, Usage: "uname [-a]", Summary: "Kernel information", Handler: cmdUname},
		{Name: "cowsay", Group: GroupFun, Usage: "cowsay <text>", Summary: "A talking cow", Handler: cmdCowsay},
		{Name: "figlet", Group: GroupFun, Usage: "figlet <text>", Summary: "Large letters", Handler: cmdFiglet},
		{Name: "fortune", Group: GroupFun, Usage: "fortune", Summary: "A random quote", Handler: cmdFortune},
		{Name: "exit", Group: GroupSystem, Usage: "exit", Summary: "Exit terminal", Handler: cmdExit},
	}
}

var helpGroups = []Group{GroupFiles, GroupDev, GroupCloud, GroupFun, GroupSystem}

func helpHandler(r *Registry) Handler {
	return func(cmd Command, _ *Environment) Result {
		if topic := cmd.Arg(0); topic != "" {
			return helpTopic(r, topic)
		}
		lines := []Line{{Kind: KindInfo, Text: "Available Commands:"}}
		for _, g := range helpGroups {
			lines = append(lines, Line{Kind: KindInfo}, Line{Kind: KindInfo, Text: string(g) + ":"})
			for _, e := range r.Entries() {
				if e.Group != g {
					continue
				}
				lines = append(lines, Line{Kind: KindInfo, Text: fmt.Sprintf("  %-15s - %s", helpLabel(e), e.Summary)})
			}
		}
		lines = append(lines,
			Line{Kind: KindInfo},
			Line{Kind: KindInfo, Text: "💡 Tip: Use Tab for command completion and ↑/↓ for history"},
		)
		return Lines(lines...)
	}
}

// helpLabel is the usage column: the usage string, with aliases spliced in
// after the name for commands that have them.
func helpLabel(e *Entry) string {
	if len(e.Aliases) == 0 {
		return e.Usage
	}
	names := append([]string{e.Name}, e.Aliases...)
	return strings.Join(names, ", ")
}

func helpTopic(r *Registry, topic string) Result {
	e, ok := r.Resolve(topic)
	if !ok {
		return Errorf("help: no help topics match '%s'", topic)
	}
	lines := []Line{
		{Kind: KindInfo, Text: "Usage: " + e.Usage},
		{Kind: KindInfo, Text: "  " + e.Summary},
	}
	if len(e.Aliases) > 0 {
		lines = append(lines, Line{Kind: KindInfo, Text: "Aliases: " + strings.Join(e.Aliases, ", ")})
	}
	return Lines(lines...)
}

// knownTools are recognisable command names the station has no simulation
// for. They report success instead of command not found. None of them may
// collide with a registered name.
var knownTools = []string{
	"vim", "vi", "nano", "emacs", "htop", "top", "curl", "wget", "ssh", "scp",
	"make", "go", "cargo", "rustc", "gcc", "java", "kubectl", "helm",
	"terraform", "aws", "gcloud", "az", "brew", "apt", "apt-get", "sudo",
	"grep", "find", "tar", "zip", "unzip", "ping", "man", "less", "more",
	"head", "tail", "chmod", "chown", "cp", "mv", "rm", "ps", "kill", "df",
	"du", "free", "history", "which", "env", "export", "bun", "deno", "tsc",
	"eslint", "prettier", "jest", "vitest",
}

func knownTool(name string) bool {
	for _, t := range knownTools {
		if t == name {
			return true
		}
	}
	return false
}
