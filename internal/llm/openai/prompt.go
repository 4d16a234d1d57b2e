package openai

const systemPromptAspect = "You are a candidate evaluation engine. Respond with JSON only. No markdown. " +
	`The output object must have exactly these keys: "score" (number 0-100), "breakdown" (object), "reasoning" (object).`

// BuildAspectMessages assembles the chat messages for one aspect evaluation:
// the rubric rides in the system role, the candidate context in the user role.
func BuildAspectMessages(rubric, contextJSON string) []chatMessage {
	return []chatMessage{
		{Role: "system", Content: systemPromptAspect},
		{Role: "system", Content: rubric},
		{Role: "user", Content: "Analyze:\n" + contextJSON},
	}
}
