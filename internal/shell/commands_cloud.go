package shell

import "fmt"

const vercelUsage = `Vercel CLI 32.5.0
Usage: vercel [options] [command]

Commands:
  login     Login to Vercel
  deploy    Deploy project
  dev       Start development server
  build     Build project
  env       Manage environment variables`

const supabaseUsage = `Supabase CLI 1.123.4
Usage: supabase [command]

Commands:
  login     Login to Supabase
  start     Start local development
  stop      Stop local development
  db        Database commands
  gen       Generate types`

const dockerUsage = `Docker version 24.0.6
Usage: docker [OPTIONS] COMMAND

Commands:
  build     Build an image
  run       Run a container
  ps        List containers
  images    List images
  pull      Pull an image`

func cmdVercel(cmd Command, _ *Environment) Result {
	if len(cmd.Args) == 0 {
		return block(KindInfo, vercelUsage)
	}
	switch sub := cmd.Args[0]; sub {
	case "login":
		return Single(KindSuccess, "🔐 Login successful! Welcome to Vercel.")
	case "deploy":
		return Lines(
			Line{Kind: KindSuccess, Text: "🔍 Inspecting project..."},
			Line{Kind: KindSuccess, Text: "🚀 Deploying to production..."},
			Line{Kind: KindSuccess, Text: fmt.Sprintf("✅ Deployment ready: https://nabila-station-%s.vercel.app", deploymentID())},
		)
	case "dev":
		return Lines(
			Line{Kind: KindSuccess, Text: "🚀 Vercel dev server starting..."},
			Line{Kind: KindSuccess, Text: "  Ready on http://localhost:3000"},
		)
	case "build":
		return Lines(
			Line{Kind: KindSuccess, Text: "📦 Building for Vercel..."},
			Line{Kind: KindSuccess, Text: "✅ Build ready for deployment"},
		)
	case "env":
		return Lines(
			Line{Kind: KindOutput, Text: "Environment variables:"},
			Line{Kind: KindOutput, Text: "  VITE_SUPABASE_URL=***"},
			Line{Kind: KindOutput, Text: "  VITE_SUPABASE_ANON_KEY=***"},
		)
	default:
		return Errorf("vercel: command not found: %s", sub)
	}
}

func cmdSupabase(cmd Command, _ *Environment) Result {
	if len(cmd.Args) == 0 {
		return block(KindInfo, supabaseUsage)
	}
	switch sub := cmd.Args[0]; sub {
	case "login":
		return Single(KindSuccess, "🔑 Supabase login successful!")
	case "start":
		return Lines(
			Line{Kind: KindSuccess, Text: "🚀 Starting Supabase local development..."},
			Line{Kind: KindSuccess, Text: "✅ Database started"},
			Line{Kind: KindSuccess, Text: "✅ API Gateway started"},
			Line{Kind: KindSuccess, Text: "✅ Auth started"},
			Line{Kind: KindOutput, Text: "  Studio URL: http://localhost:54323"},
			Line{Kind: KindOutput, Text: "  API URL: http://localhost:54321"},
		)
	case "stop":
		return Single(KindSuccess, "⏹️  Supabase local development stopped")
	case "db":
		switch cmd.Arg(1) {
		case "push":
			return Lines(
				Line{Kind: KindSuccess, Text: "📤 Pushing database changes..."},
				Line{Kind: KindSuccess, Text: "✅ Database updated successfully"},
			)
		case "pull":
			return Lines(
				Line{Kind: KindSuccess, Text: "📥 Pulling database changes..."},
				Line{Kind: KindSuccess, Text: "✅ Local database synced"},
			)
		case "reset":
			return Lines(
				Line{Kind: KindWarning, Text: "⚠️  Resetting local database..."},
				Line{Kind: KindSuccess, Text: "✅ Database reset complete"},
			)
		}
		return Single(KindInfo, "Database commands: push, pull, reset")
	case "gen":
		if cmd.Arg(1) == "types" {
			return Lines(
				Line{Kind: KindSuccess, Text: "🔧 Generating TypeScript types..."},
				Line{Kind: KindSuccess, Text: "✅ Types generated successfully"},
			)
		}
		return Single(KindInfo, "Generate commands: types")
	default:
		return Errorf("supabase: command not found: %s", sub)
	}
}

func cmdDocker(cmd Command, _ *Environment) Result {
	if len(cmd.Args) == 0 {
		return block(KindInfo, dockerUsage)
	}
	image := cmd.Arg(1)
	if image == "" {
		image = "image"
	}
	switch sub := cmd.Args[0]; sub {
	case "ps":
		return Lines(
			Line{Kind: KindOutput, Text: "CONTAINER ID   IMAGE     COMMAND                  CREATED       STATUS       PORTS     NAMES"},
			Line{Kind: KindOutput, Text: `a1b2c3d4e5f6   postgres  "docker-entrypoint.s…"   2 hours ago   Up 2 hours   5432/tcp  supabase_db`},
		)
	case "images":
		return Lines(
			Line{Kind: KindOutput, Text: "REPOSITORY   TAG       IMAGE ID       CREATED       SIZE"},
			Line{Kind: KindOutput, Text: "postgres     latest    a1b2c3d4e5f6   2 weeks ago   379MB"},
			Line{Kind: KindOutput, Text: "node         18        f6e5d4c3b2a1   3 weeks ago   993MB"},
		)
	case "build":
		return Lines(
			Line{Kind: KindSuccess, Text: "🔨 Building Docker image..."},
			Line{Kind: KindSuccess, Text: "✅ Image built successfully"},
		)
	case "run":
		return Lines(
			Line{Kind: KindSuccess, Text: fmt.Sprintf("🏃 Running container from %s...", image)},
			Line{Kind: KindSuccess, Text: "✅ Container started"},
		)
	case "pull":
		return Lines(
			Line{Kind: KindSuccess, Text: fmt.Sprintf("⬇️  Pulling %s...", image)},
			Line{Kind: KindSuccess, Text: "✅ Pull complete"},
		)
	default:
		return Errorf("docker: '%s' is not a docker command.", sub)
	}
}
