package shell

import (
	"fmt"
	"strings"
	"time"
)

const gitUsage = `usage: git [--version] [--help] [-C <path>] [-c <name>=<value>]
           [--exec-path[=<path>]] [--html-path] [--man-path] [--info-path]
           [-p | --paginate | -P | --no-pager] [--no-replace-objects] [--bare]
           [--git-dir=<path>] [--work-tree=<path>] [--namespace=<name>]
           [--super-prefix=<path>] [--config-env=<name>=<envvar>]
           <command> [<args>]`

const gitStatus = `On branch main
Your branch is up to date with 'origin/main'.

Changes to be committed:
  (use "git reset HEAD <file>..." to unstage)
        modified:   src/components/Terminal.tsx
        new file:   src/components/CommandProcessor.tsx

Changes not staged for commit:
  (use "git add <file>..." to update what will be committed)
  (use "git checkout -- <file>..." to discard changes in working directory)
        modified:   README.md`

func cmdGit(cmd Command, _ *Environment) Result {
	if len(cmd.Args) == 0 {
		return block(KindInfo, gitUsage)
	}
	sub := cmd.Args[0]
	rest := cmd.Args[1:]
	switch sub {
	case "--version", "version":
		return Single(KindOutput, "git version 2.43.0")
	case "init":
		return Single(KindSuccess, fmt.Sprintf("Initialized empty Git repository in %s/.git/", HomeDir))
	case "status":
		return block(KindOutput, gitStatus)
	case "add":
		files := strings.Join(rest, " ")
		if files == "" {
			files = "."
		}
		return Single(KindSuccess, fmt.Sprintf("Added %s to staging area", files))
	case "commit":
		return gitCommit(rest)
	case "push":
		return Lines(
			Line{Kind: KindSuccess, Text: "Pushing to origin/main..."},
			Line{Kind: KindSuccess, Text: "Everything up-to-date"},
		)
	case "pull":
		return Single(KindSuccess, "Already up to date.")
	case "clone":
		if len(rest) == 0 {
			return Errorf("fatal: You must specify a repository to clone.")
		}
		repo := strings.TrimRight(rest[0], "/")
		dir := strings.TrimSuffix(repo[strings.LastIndex(repo, "/")+1:], ".git")
		return Lines(
			Line{Kind: KindSuccess, Text: fmt.Sprintf("Cloning into '%s'...", dir)},
			Line{Kind: KindSuccess, Text: "Clone completed successfully"},
		)
	case "branch":
		return Lines(
			Line{Kind: KindOutput, Text: "* main"},
			Line{Kind: KindOutput, Text: "  development"},
			Line{Kind: KindOutput, Text: "  feature/new-terminal"},
		)
	case "log":
		return gitLog()
	default:
		return Errorf("git: '%s' is not a git command. See 'git --help'.", sub)
	}
}

func gitCommit(args []string) Result {
	message := ""
	for i, a := range args {
		if a == "-m" || a == "--message" {
			message = strings.Join(args[i+1:], " ")
			if message == "" {
				return Errorf("error: switch `m' requires a value")
			}
			break
		}
	}
	if message == "" {
		return Errorf("Aborting commit due to empty commit message.")
	}
	return Lines(
		Line{Kind: KindSuccess, Text: fmt.Sprintf("[main %s] %s", shortHash(), message)},
		Line{Kind: KindSuccess, Text: " 2 files changed, 24 insertions(+), 3 deletions(-)"},
	)
}

func gitLog() Result {
	today := now()
	yesterday := today.Add(-24 * time.Hour)
	const layout = "Mon Jan 02 2006"
	return Lines(
		Line{Kind: KindOutput, Text: "commit a1b2c3d4e5f6 (HEAD -> main, origin/main)"},
		Line{Kind: KindOutput, Text: "Author: Nabila Ahmad <nabila@development.com>"},
		Line{Kind: KindOutput, Text: "Date:   " + today.Format(layout)},
		Line{Kind: KindOutput, Text: ""},
		Line{Kind: KindOutput, Text: "    Enhanced terminal with command processor"},
		Line{Kind: KindOutput, Text: ""},
		Line{Kind: KindOutput, Text: "commit f6e5d4c3b2a1"},
		Line{Kind: KindOutput, Text: "Author: Nabila Ahmad <nabila@development.com>"},
		Line{Kind: KindOutput, Text: "Date:   " + yesterday.Format(layout)},
		Line{Kind: KindOutput, Text: ""},
		Line{Kind: KindOutput, Text: "    Initial development station setup"},
	)
}
