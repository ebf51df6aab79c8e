// Package messages defines message handling patterns and conventions for the
// novix application. This includes error, success, warning and info
// messages. Consistent messaging across layers keeps the single status line
// readable.
//
// # Message Handling Patterns by Layer
//
// ## Language Layer (internal/cmdlang, ranking in internal/commands)
//
// Never return Go errors. Every problem found while parsing a command is a
// plain string appended to ParsedCommand.Errors or ParsedCommand.Warnings,
// in the order it was encountered, so one pass can report several problems.
// Ranking has no failure mode: a query that matches nothing yields an empty
// list.
//
// ## Store Layer (internal/workspace, internal/cards, internal/config)
//
// Return standard Go errors wrapped with context:
//
//	card, err := store.SaveCard(ctx, card)
//	if err != nil {
//	    return fmt.Errorf("failed to save %s card: %w", card.Type, err)
//	}
//
// Sentinel errors (workspace.ErrNotFound, workspace.ErrNoChapter,
// cards.ErrInvalidCommand) are matched with errors.Is. The helper
// messages.WrapError(err, "context") is a clearer alternative to
// fmt.Errorf("context: %w", err).
//
// ## Command Layer (internal/commands)
//
// Item actions return a tea.Cmd producing a StatusMsg or a domain message
// (types.CreatedMsg, types.ViewSwitchMsg). Pattern:
//
//	func (e *Executor) Unpin(id string) tea.Cmd {
//	    return func() tea.Msg {
//	        if err := e.store.UnpinTechnique(ctx, id); err != nil {
//	            return types.ErrorStatusMsg(fmt.Sprintf("Unpin failed: %v", err))
//	        }
//	        return types.SuccessMsg("Unpinned " + id)
//	    }
//	}
//
// ## UI Layer (internal/app, internal/palette)
//
// Show StatusMsg values on the status line and clear them after
// types.StatusDisplayDuration. The palette shows only the first error of a
// failed resolution inline; a successful create with warnings shows the
// first warning as a notice after it ran.
//
// # Error Message Guidelines
//
//  1. Be specific: "technique not found: iceberg" not "not found"
//  2. Parse errors name the offending token: "unknown option --bar"
//  3. Keep them to one line; the status bar truncates long messages
package messages
