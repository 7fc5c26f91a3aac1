package menu

import (
	"fmt"
	"strings"

	"github.com/m3rciful/pontusbot/core/telegram/format"
)

// Branding parameterizes the static texts.
type Branding struct {
	BotName   string `yaml:"bot_name" envconfig:"BRANDING_BOT_NAME"`
	Author    string `yaml:"author" envconfig:"BRANDING_AUTHOR"`
	SourceURL string `yaml:"source_url" envconfig:"BRANDING_SOURCE_URL"`
}

// DefaultBranding returns the stock PontusBot branding.
func DefaultBranding() Branding {
	return Branding{
		BotName:   "PontusBot",
		Author:    "ihatenodejs",
		SourceURL: "https://github.com/ihatenodejs/pontus-bot",
	}
}

// WithDefaults fills empty fields from DefaultBranding.
func (b Branding) WithDefaults() Branding {
	d := DefaultBranding()
	if strings.TrimSpace(b.BotName) == "" {
		b.BotName = d.BotName
	}
	if strings.TrimSpace(b.Author) == "" {
		b.Author = d.Author
	}
	if strings.TrimSpace(b.SourceURL) == "" {
		b.SourceURL = d.SourceURL
	}
	return b
}

// Welcome greets the user by first name.
func Welcome(b Branding, firstName string) Payload {
	text := fmt.Sprintf("Welcome, %s!\nI'm %s, an open source Telegram bot.\nHow can I help you?",
		format.Bold(firstName), format.EscapeHTML(b.BotName))
	return Payload{
		Text: text,
		Keyboard: [][]Button{{
			{Text: "Help", Action: ActionHelp},
			{Text: "About", Action: ActionAbout},
		}},
	}
}

// HelpRoot lists the help topics.
func HelpRoot() Payload {
	return Payload{
		Text: "Please choose a topic:",
		Keyboard: [][]Button{{
			{Text: "General", Action: ActionGeneral},
			{Text: "Files", Action: ActionHelpFiles},
			{Text: "Management", Action: ActionManagement},
			{Text: goBack, Action: ActionStart},
		}},
	}
}

// HelpGeneral describes the general commands.
func HelpGeneral() Payload {
	return Payload{
		Text:     "<b>General Commands</b>\n\n/start - Start the bot\n/help - Show the help menu\n/about - Show information about the bot",
		Keyboard: [][]Button{backRow(ActionHelp)},
	}
}

// HelpFiles describes the /files command.
func HelpFiles() Payload {
	return Payload{
		Text:     "<b>File Commands</b>\n\n/files list - List all available files\n/files get <i>file_id</i> - Download a file by ID",
		Keyboard: [][]Button{backRow(ActionHelp)},
	}
}

// HelpManagement is a placeholder topic.
func HelpManagement() Payload {
	return Payload{
		Text:     "Coming soon...",
		Keyboard: [][]Button{backRow(ActionHelp)},
	}
}

// About describes the bot and links its source code.
func About(b Branding) Payload {
	text := fmt.Sprintf("<b>About %s</b>\n\n%s is an open source Telegram bot created by %s.\n\nSource code: %s",
		format.EscapeHTML(b.BotName), format.EscapeHTML(b.BotName), format.EscapeHTML(b.Author),
		format.Link(b.SourceURL, "Available on GitHub"))
	return Payload{
		Text:     text,
		Keyboard: [][]Button{backRow(ActionStart)},
	}
}
