package shell

import "fmt"

// dateLayout matches the JavaScript Date.toString form the station imitates.
const dateLayout = "Mon Jan 02 2006 15:04:05 GMT-0700 (MST)"

func cmdWhoami(Command, *Environment) Result {
	return Single(KindOutput, User)
}

func cmdDate(Command, *Environment) Result {
	return Single(KindOutput, now().Format(dateLayout))
}

const neofetchArt = "                   -`                %s\n" +
	"                  .o+`               %s\n" +
	"                 `ooo/               %s\n" +
	"                `+oooo:              %s\n" +
	"               `+oooooo:             %s\n" +
	"               -+oooooo+:            %s\n" +
	"             `/:-:++oooo+:           %s\n" +
	"            `/++++/+++++++:          %s\n" +
	"           `/++++++++++++++:         %s\n" +
	"          `/+++ooooooooooooo/`       %s\n" +
	"         ./ooosssso++osssssso+`      %s\n" +
	"        .oossssso-````/ossssss+`     %s\n" +
	"       -osssssso.      :ssssssso.    %s\n" +
	"      :osssssss/        osssso+++.   %s\n" +
	"     /ossssssss/        +ssssooo/-   %s\n" +
	"   `/ossssso+/:-        -:/+osssso+- %s\n" +
	"  `+sso+:-`                 `.-/+oso: %s\n" +
	" `++:.                           `-/+/ %s\n" +
	" .`                                 `/"

func cmdNeofetch(_ Command, env *Environment) Result {
	fields := []any{
		"nabila@development-station",
		"─────────────────────────────────",
		"OS: Nabila Development Environment",
		"Host: Lovable Cloud Platform",
		"Kernel: React 18.3.1",
		"Uptime: Always Online",
		fmt.Sprintf("Packages: %d (npm)", env.PackageCount()),
		"Shell: bash 5.0.0",
		"Resolution: Responsive",
		"DE: Vite + Tailwind CSS",
		"WM: React Router",
		"Theme: Modern Dark/Light",
		"Icons: Lucide React",
		"Terminal: Nabila Terminal Emulator",
		"CPU: JavaScript V8 Engine",
		"GPU: CSS Animations",
		"Memory: Optimized React State",
		"Disk: Cloud Storage",
	}
	return block(KindInfo, fmt.Sprintf(neofetchArt, fields...))
}

func cmdNode(cmd Command, _ *Environment) Result {
	if len(cmd.Args) == 0 {
		return Lines(
			Line{Kind: KindSuccess, Text: "Welcome to Node.js v20.10.0."},
			Line{Kind: KindSuccess, Text: `Type ".help" for more information.`},
		)
	}
	if a := cmd.Args[0]; a == "--version" || a == "-v" {
		return Single(KindOutput, "v20.10.0")
	}
	return Lines(
		Line{Kind: KindSuccess, Text: fmt.Sprintf("Executing %s...", cmd.Args[0])},
		Line{Kind: KindSuccess, Text: "✅ Script executed successfully"},
	)
}

func cmdPython(cmd Command, _ *Environment) Result {
	if len(cmd.Args) == 0 {
		return Lines(
			Line{Kind: KindSuccess, Text: "Python 3.11.6 (main, Oct  2 2023, 13:34:03) [GCC 12.2.0] on linux"},
			Line{Kind: KindSuccess, Text: `Type "help", "copyright", "credits" or "license" for more information.`},
		)
	}
	if a := cmd.Args[0]; a == "--version" || a == "-V" {
		return Single(KindOutput, "Python 3.11.6")
	}
	return Lines(
		Line{Kind: KindSuccess, Text: fmt.Sprintf("Running %s...", cmd.Args[0])},
		Line{Kind: KindSuccess, Text: "✅ Script finished with exit code 0"},
	)
}

func cmdCode(cmd Command, _ *Environment) Result {
	if target := cmd.Arg(0); target != "" {
		return Single(KindSuccess, fmt.Sprintf("Opening %s in VS Code...", target))
	}
	return Single(KindSuccess, "Opening VS Code...")
}

func cmdUname(cmd Command, _ *Environment) Result {
	if hasShortFlag(cmd.Args, 'a') {
		return Single(KindOutput, "Linux nabila-station 5.15.0-91-generic #101-Ubuntu SMP x86_64 x86_64 x86_64 GNU/Linux")
	}
	return Single(KindOutput, "Linux")
}

func cmdExit(Command, *Environment) Result {
	return Single(KindInfo, "Goodbye! 👋")
}
