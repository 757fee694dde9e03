package shell

import "sort"

const (
	// HomeDir is the simulated working directory of every new session.
	HomeDir = "/workspace/nabila-development-station"
	// User is the simulated login name.
	User = "nabila-developer"
	// ProjectName matches the name field of the virtual package.json.
	ProjectName = "nabila-development-station"
)

// baselinePackages are the station's own declared dependencies.
var baselinePackages = []string{"react", "vite", "typescript", "@supabase/supabase-js"}

const packageJSON = `{
  "name": "nabila-development-station",
  "version": "1.0.0",
  "scripts": {
    "dev": "vite",
    "build": "vite build"
  }
}`

const readmeMD = "# Nabila Ahmad Development Station\n" +
	"\n" +
	"🚀 A comprehensive development environment built by Nabila Ahmad\n" +
	"\n" +
	"## Features\n" +
	"- Terminal Emulator\n" +
	"- Git Integration\n" +
	"- Package Management\n" +
	"- Cloud Deployment\n" +
	"- Database Management\n" +
	"\n" +
	"## Quick Start\n" +
	"```bash\n" +
	"npm install\n" +
	"npm run dev\n" +
	"```"

const dotEnv = `VITE_SUPABASE_URL=https://myspriwgycyymelgyttu.supabase.co
VITE_SUPABASE_ANON_KEY=eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...`

const gitignore = `node_modules
dist
dist-ssr
*.local
.env
.DS_Store
*.log`

const viteConfig = `import { defineConfig } from 'vite'
import react from '@vitejs/plugin-react-swc'

export default defineConfig({
  plugins: [react()],
  resolve: {
    alias: {
      "@": path.resolve(__dirname, "./src"),
    },
  },
})`

// Environment is the mutable state of one terminal session. It is owned by a
// single Interpreter and is not safe for concurrent use.
type Environment struct {
	packages   map[string]struct{}
	order      []string
	workingDir string
	files      map[string]string
}

// NewEnvironment returns the initial session state.
func NewEnvironment() *Environment {
	env := &Environment{
		packages:   make(map[string]struct{}, len(baselinePackages)),
		workingDir: HomeDir,
		files: map[string]string{
			"package.json":   packageJSON,
			"README.md":      readmeMD,
			".env":           dotEnv,
			".gitignore":     gitignore,
			"vite.config.ts": viteConfig,
		},
	}
	for _, p := range baselinePackages {
		env.Install(p)
	}
	return env
}

// Install adds a package name. Adding a present name is a no-op; the return
// value reports whether the set changed.
func (e *Environment) Install(name string) bool {
	if name == "" {
		return false
	}
	if _, ok := e.packages[name]; ok {
		return false
	}
	e.packages[name] = struct{}{}
	e.order = append(e.order, name)
	return true
}

func (e *Environment) Installed(name string) bool {
	_, ok := e.packages[name]
	return ok
}

// Packages lists installed packages in the order they were first added.
func (e *Environment) Packages() []string {
	return append([]string(nil), e.order...)
}

func (e *Environment) PackageCount() int { return len(e.packages) }

func (e *Environment) WorkingDir() string { return e.workingDir }

// ReadFile looks a virtual file up by exact name.
func (e *Environment) ReadFile(name string) (string, bool) {
	content, ok := e.files[name]
	return content, ok
}

// Files returns the virtual file names sorted.
func (e *Environment) Files() []string {
	names := make([]string, 0, len(e.files))
	for name := range e.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot is the serialisable part of an Environment. The virtual file table
// is static and is not included.
type Snapshot struct {
	Packages   []string `json:"packages"`
	WorkingDir string   `json:"working_dir"`
}

func (e *Environment) Snapshot() Snapshot {
	return Snapshot{Packages: e.Packages(), WorkingDir: e.workingDir}
}

// Restore builds an Environment from a snapshot on top of the initial state.
func Restore(s Snapshot) *Environment {
	env := NewEnvironment()
	for _, p := range s.Packages {
		env.Install(p)
	}
	if s.WorkingDir != "" {
		env.workingDir = s.WorkingDir
	}
	return env
}
