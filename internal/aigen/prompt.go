package aigen

import "fmt"

func BuildTopicsPrompt(text string) string {
	return fmt.Sprintf(`You are an academic assistant. Your task is to identify the main topics from the following text.
Provide the output as a single JSON object with one key: "topics". This key should contain a list of strings.
Example format: {"topics": ["Topic 1", "Topic 2: Sub-topic"]}

Text to analyze:
---
%s`, text)
}

func BuildQuestionsPrompt(topicTitle, fullText string, count int) string {
	return fmt.Sprintf(`You are an expert quiz creator. Based ONLY on the provided text, generate %d multiple-choice questions for the topic: "%s".

Instructions:
1. Each question must have 4 options (A, B, C, D).
2. Indicate the correct answer.
3. Provide a brief explanation for the correct answer.

Format your output as a JSON array of objects. Each object must have these keys: "question_text", "options" (an object), "correct_answer" (a string like 'A'), and "explanation".
Generate pure, valid JSON with no text outside the JSON.

Relevant text:
---
%s`, count, topicTitle, fullText)
}
