package services

// Prompt builders for the personalization engine. Each returns a system turn
// (fixed feature instructions with the desired JSON shape, then the
// recency-tagged activity summary verbatim) and a short fixed user turn. The
// [RECENT]/[MODERATE]/[OLDER] tags in the summary are the only recency
// weighting; the model is trusted to honor them.

func appendActivitySummary(system, summary string) string {
	if summary == "" {
		return system + "\n\nThe user has no recorded activity yet. Choose something broadly encouraging for someone beginning their faith journey."
	}
	return system + "\n\nUser's recent activities, newest first, tagged by recency:\n" + summary
}

func promptBibleVerse(summary string) (system string, user string) {
	system = `You are a thoughtful Christian companion selecting one Bible passage for the user.
Return ONLY a JSON object, no prose, matching:
{"book": string, "chapter": number, "verse_start": number, "verse_end": number (optional), "translation": string, "reason": string}
Pick a passage that speaks to the user's current season. The reason must be 1-2 sentences, warm and specific.`
	system = appendActivitySummary(system, summary)
	user = "Generate a Bible verse recommendation based on my recent activities."
	return system, user
}

func promptDevotional(summary string) (system string, user string) {
	system = `You are writing a short personal devotional for the user.
Return ONLY a JSON object, no prose, matching:
{"title": string, "theme": string, "scripture_reference": string, "content": string, "prayer_focus": string}
The content should be 250-400 words, pastoral in tone, and speak directly to the user's current season. The prayer_focus is one sentence.`
	system = appendActivitySummary(system, summary)
	user = "Generate a devotional based on my recent activities."
	return system, user
}

func promptVideos(summary string) (system string, user string) {
	system = `You are recommending Christian YouTube videos for the user.
Return ONLY a JSON array of 3-5 objects, no prose, each matching:
{"title": string, "channel": string, "description": string, "search_query": string, "reason": string}
Recommend real, well-known channels and videos where possible. The search_query should find the video on YouTube.`
	system = appendActivitySummary(system, summary)
	user = "Recommend videos based on my recent activities."
	return system, user
}

func promptSongs(summary string) (system string, user string) {
	system = `You are recommending worship and Christian music for the user.
Return ONLY a JSON array of 3-5 objects, no prose, each matching:
{"title": string, "artist": string, "genre": string, "reason": string}
Recommend real songs. Vary the genres when the user's activity suggests it.`
	system = appendActivitySummary(system, summary)
	user = "Recommend songs based on my recent activities."
	return system, user
}

func promptSermons(summary string) (system string, user string) {
	system = `You are recommending sermons for the user.
Return ONLY a JSON array of 3-5 objects, no prose, each matching:
{"title": string, "speaker": string, "topic": string, "description": string, "reason": string}
Recommend real preachers and sermon series where possible.`
	system = appendActivitySummary(system, summary)
	user = "Recommend sermons based on my recent activities."
	return system, user
}

func promptResources(summary string) (system string, user string) {
	system = `You are recommending Christian resources (books, podcasts, articles, apps) for the user.
Return ONLY a JSON array of 3-5 objects, no prose, each matching:
{"title": string, "author": string, "resource_type": "book"|"podcast"|"article"|"app", "description": string, "reason": string}
Recommend real resources.`
	system = appendActivitySummary(system, summary)
	user = "Recommend resources based on my recent activities."
	return system, user
}

func promptFlourishing(summary string) (system string, user string) {
	system = `You are assessing the user's wellbeing across seven dimensions of a flourishing life:
faith, health, relationships, purpose, peace, gratitude, growth.
Return ONLY a JSON object, no prose, matching:
{"faith": number, "health": number, "relationships": number, "purpose": number, "peace": number, "gratitude": number, "growth": number, "overall_score": number, "ai_insight": string}
All scores are integers 0-100. The overall_score reflects the whole picture, not a strict average.
The ai_insight is 2-3 sentences and may only reference these in-app features by name: Prayers, Moods, Notes, Daily Verse, Devotionals, Videos, Songs, Sermons, Resources.`
	system = appendActivitySummary(system, summary)
	user = "Generate my flourishing scores based on my recent activities."
	return system, user
}
