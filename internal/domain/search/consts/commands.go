// Package consts contains constants for the search domain
package consts

// Command represents a bot command
type Command struct {
	Name        string
	Description string
}

// Bot commands
var (
	CommandStart          = Command{Name: "start", Description: "Start the bot"}
	CommandStatus         = Command{Name: "status", Description: "Show bot statistics"}
	CommandSetMode        = Command{Name: "setmode", Description: "Set search mode: private or public"}
	CommandAutoDelete     = Command{Name: "autodelete", Description: "Toggle auto delete of results"}
	CommandSetNRFImage    = Command{Name: "setnrfimage", Description: "Set the no results image"}
	CommandSetPrivateLink = Command{Name: "setprivatelink", Description: "Set the private channel link"}
	CommandBroadcast      = Command{Name: "broadcast", Description: "Broadcast a message to all users"}
	CommandCancel         = Command{Name: "cancel", Description: "Cancel the current operation"}
	CommandAddDB          = Command{Name: "adddb", Description: "Set the catalog source channel"}
	CommandRemoveDB       = Command{Name: "removedb", Description: "Clear the catalog source channel"}
)

// UserCommands are shown in the menu for everyone
var UserCommands = []Command{
	CommandStart,
}

// AdminCommands are restricted to ADMIN_IDS
var AdminCommands = []Command{
	CommandStatus,
	CommandSetMode,
	CommandAutoDelete,
	CommandSetNRFImage,
	CommandSetPrivateLink,
	CommandBroadcast,
	CommandCancel,
	CommandAddDB,
	CommandRemoveDB,
}
