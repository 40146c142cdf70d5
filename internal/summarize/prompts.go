package summarize

import "fmt"

// The prompt templates consume the transcript's rendered "[mm:ss-mm:ss] text"
// lines verbatim. The exact-timestamp rules below depend on that shape, so the
// normalizer must never reformat timestamps.

const bulletPointsTemplate = `You are an expert YouTube video analyst. Your task is to extract and present the core informational content from the following transcript, focusing on subject-matter insights and technical depth rather than event logistics.

Instructions:

Do NOT include any introductory or concluding phrases (e.g. "Here is a summary").

ONLY return 5 to 7 bullet points that capture:
- Main technical topics or themes
- Key arguments or positions
- Important findings or explanations
- Highlighted methods, tools, or frameworks
- Significant statistics, comparisons, or results

Give preference to educational or informative parts over logistical or general announcements.

Formatting rules:
- Format: Markdown
- Each bullet starts with "- "
- Each bullet point must be 15-25 words, a complete and standalone thought
- Use parallel sentence structure
- Keep content order aligned with the video

Transcript: %s
`

const detailedSummaryTemplate = `ROLE
You are an expert YouTube video analyst.

INPUTS
- bullet_points: key bullet points summarizing the video content
- transcript: full transcript with timestamps in format [mm:ss-mm:ss] text

GOAL
For each bullet point, generate a dedicated section that:
- Expands on the point with contextual detail from the transcript
- Uses relevant direct quotes from the video
- References EXACT timestamps for each quote from the transcript. Do NOT make up timestamps.

OUTPUT FORMAT (Markdown)
Repeat the following structure for each bullet point, in the same order:

**Point #[number]: [shortened version of the bullet point, max 20 words]**

Provide a detailed explanation of this point in line with the video's narrative flow.

Support your explanation with direct quotes and timestamp references.
Use ONLY the timestamps that appear in the transcript. Never invent or guess timestamps.
Format quotes as: "[quote]" (mm:ss-mm:ss)

**Why this point matters:**
Why is this point important in the context of the video?
How does it connect to other bullet points or ideas?

RULES
- Use ONLY timestamps that exist in the transcript
- Use **bold** for important terms or concepts
- Do NOT include any introductory or concluding sections
- Stay accurate, objective, and faithful to the transcript
- Explain technical terms on first use

Bullet points: %s
Transcript: %s
`

// BulletPointsPrompt builds the first-pass outline prompt.
func BulletPointsPrompt(transcript string) string {
	return fmt.Sprintf(bulletPointsTemplate, transcript)
}

// DetailedSummaryPrompt builds the second-pass elaboration prompt from the
// outline and the transcript.
func DetailedSummaryPrompt(bulletPoints, transcript string) string {
	return fmt.Sprintf(detailedSummaryTemplate, bulletPoints, transcript)
}
