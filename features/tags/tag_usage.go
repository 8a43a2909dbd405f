package tags

import (
	"context"
	"fmt"
	"log"
	"regexp"

	"modbot/dispatch"
	"modbot/models"
	"modbot/services"
)

// tagInvocationRegex matches messages invoking a tag, e.g. "!faq" at the
// start of the message.
var tagInvocationRegex = regexp.MustCompile(`^!([A-Za-z0-9_-]+)`)

// TagUsageHandler counts tag invocations from received messages.
type TagUsageHandler struct {
	tagsService services.TagsService
}

func NewTagUsageHandler(tagsService services.TagsService) *TagUsageHandler {
	return &TagUsageHandler{tagsService: tagsService}
}

func (h *TagUsageHandler) Name() string {
	return "tags.usage"
}

func (h *TagUsageHandler) Handle(
	ctx context.Context,
	scope *dispatch.Scope,
	notification models.Notification,
) error {
	messageNotification, ok := notification.(models.MessageReceivedNotification)
	if !ok {
		return nil
	}
	message := messageNotification.Message

	if message.IsBot {
		return nil
	}

	match := tagInvocationRegex.FindStringSubmatch(message.Content)
	if match == nil {
		return nil
	}
	tagName := match[1]

	recorded, err := h.tagsService.RecordTagUse(ctx, message.GuildID, tagName)
	if err != nil {
		return fmt.Errorf("failed to record use of tag %q: %w", tagName, err)
	}
	if !recorded {
		// Looked like an invocation but no such tag exists; not an error
		return nil
	}

	log.Printf("🏷️ User %s used tag %q in guild %s", message.AuthorID, tagName, message.GuildID)
	return nil
}
