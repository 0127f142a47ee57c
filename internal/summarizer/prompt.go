package summarizer

const reportPrompt = `
You are an expert AI assistant specialized in analyzing meeting recordings, audio discussions, and video content.
Your job is to take an audio/video transcript and provide a structured, clear, and professional response in ENGLISH ONLY.
Do NOT use any other language.
Always keep formatting consistent with headings and bullet points.
Follow the structure below strictly:

====================================================================
1. Abstract Summary
2. Key Points
3. Action Items
4. Sentiment Analysis
5. Proper Transcript

TRANSCRIPT:

`

const transcriptPrefix = "This is transcript content: "

// ReportParts builds the generation parts for one chunk of transcript.
func ReportParts(text string) []string {
	return []string{reportPrompt, transcriptPrefix + text}
}
