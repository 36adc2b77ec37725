package cmd

import (
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ayusman/sigil/internal/app"
	"github.com/ayusman/sigil/internal/config"
	"github.com/ayusman/sigil/internal/hook"
	"github.com/ayusman/sigil/internal/server"
	"github.com/ayusman/sigil/internal/tray"
)

var (
	serveAddr   string
	serveStatic string
	serveTray   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP and WebSocket server",
	Run:   serve,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (default from settings)")
	serveCmd.Flags().StringVar(&serveStatic, "static", "", "directory of static files to serve")
	serveCmd.Flags().BoolVar(&serveTray, "tray", false, "show a system tray icon")
}

func serve(cmd *cobra.Command, args []string) {
	a, done := openApp()
	defer done()

	addr := serveAddr
	if addr == "" {
		addr = a.Settings().ListenAddr
	}
	staticDir := serveStatic
	if staticDir == "" {
		staticDir = findWebDir()
	}
	if staticDir != "" {
		log.Printf("Serving static files from: %s", staticDir)
	}

	startHooks(a)

	srv := server.New(server.Config{StaticDir: staticDir, App: a})
	log.Printf("Starting server on %s", addr)

	if !serveTray {
		if err := srv.ListenAndServe(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
		return
	}

	go func() {
		if err := srv.ListenAndServe(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	t := tray.New()
	t.Bind(a)
	t.SetTemplateCount(len(a.Templates()))
	t.OnOpen(func() {
		if err := openBrowser(serverURL(addr)); err != nil {
			log.Printf("Failed to open browser: %v", err)
		}
	})
	t.OnQuit(func() {
		log.Println("Shutting down")
	})
	t.Run()
}

// startHooks discovers the hooks in the data directory and runs them for
// every match.
func startHooks(a *app.App) {
	dir, err := resolveDataDir()
	if err != nil {
		log.Printf("Failed to resolve data directory: %v", err)
		return
	}

	mgr := hook.NewManager(config.HooksPath(dir))
	if err := mgr.Discover(); err != nil {
		log.Printf("Failed to discover hooks: %v", err)
		return
	}
	if n := len(mgr.List()); n > 0 {
		log.Printf("Loaded %d hooks from %s", n, mgr.HookDir())
	}

	d := hook.NewDispatcher(mgr, hook.NewExecutor(a.Settings().HookTimeoutMs))
	a.RegisterMatchCallback(d.Handle)
}

func serverURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and <data-dir>/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	dir, err := resolveDataDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(dir, "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
