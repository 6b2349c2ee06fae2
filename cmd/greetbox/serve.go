package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the greeting form over HTTP",
	Long: `Serve the greeting form web UI and the greeting backend.

The server can run in the foreground or be installed as a system service.

Examples:
  # Run in foreground (default)
  greetbox serve

  # Install as system service (requires sudo/admin privileges)
  sudo greetbox serve install

  # Control the service
  sudo greetbox serve start
  sudo greetbox serve stop
  sudo greetbox serve restart
  sudo greetbox serve status

  # Uninstall the service
  sudo greetbox serve uninstall`,
	Run: runServeDefault,
}

var serveRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the server in foreground or as service",
	Long:  `Run the server. When installed as a service, this is called automatically.`,
	Run:   runServeRun,
}

var serveInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the server as system service",
	Long: `Install greetbox as a system service.

This registers the server with the system service manager
(systemd, launchd or the Windows Service Manager) and configures it to
start on boot. Requires administrator/root privileges.`,
	Run: serviceAction("installing", InstallService),
}

var serveUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Uninstall the server service",
	Run:   serviceAction("uninstalling", UninstallService),
}

var serveStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the server service",
	Long:  `Start the greetbox service. The service must be installed first using 'greetbox serve install'.`,
	Run:   serviceAction("starting", StartService),
}

var serveStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the server service",
	Run:   serviceAction("stopping", StopService),
}

var serveRestartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Restart the server service",
	Run:   serviceAction("restarting", RestartService),
}

var serveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the server service status",
	Run: func(cmd *cobra.Command, args []string) {
		if err := StatusService(); err != nil {
			fmt.Fprintf(os.Stderr, "Error checking service status: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	serveCmd.AddCommand(serveRunCmd)
	serveCmd.AddCommand(serveInstallCmd)
	serveCmd.AddCommand(serveUninstallCmd)
	serveCmd.AddCommand(serveStartCmd)
	serveCmd.AddCommand(serveStopCmd)
	serveCmd.AddCommand(serveRestartCmd)
	serveCmd.AddCommand(serveStatusCmd)
}

func runServeDefault(cmd *cobra.Command, args []string) {
	fmt.Println("Starting greetbox in foreground mode...")
	fmt.Println("To install as a system service, use: greetbox serve install")
	fmt.Println()

	runServeForeground()
}

// runServeRun runs the server (called by the service manager or manually).
func runServeRun(cmd *cobra.Command, args []string) {
	isService := os.Getenv("INVOCATION_ID") != "" || // systemd
		os.Getenv("_") == "/bin/launchd" || // launchd
		os.Getenv("SERVICE_NAME") != "" // Windows service

	if !isService {
		runServeForeground()
		return
	}
	if err := RunService(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running service: %v\n", err)
		os.Exit(1)
	}
}

func serviceAction(verb string, action func() error) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		if err := action(); err != nil {
			fmt.Fprintf(os.Stderr, "Error %s service: %v\n", verb, err)
			fmt.Fprintln(os.Stderr, "\nNote: managing system services requires administrator privileges.")
			fmt.Fprintln(os.Stderr, "Please run with sudo (Linux/macOS) or as Administrator (Windows).")
			os.Exit(1)
		}
	}
}
