package handlers

// HandlerBundle groups the endpoint handlers registered by routes.
// Assistant is nil when no assistant is configured.
type HandlerBundle struct {
	Backend   *BackendHandler
	State     *StateHandler
	Assistant *AssistantHandler
}
