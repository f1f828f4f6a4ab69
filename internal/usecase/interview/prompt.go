package interview

import "fmt"

// systemPrompt pins the model to strict JSON output. The transcript is the
// only source of truth; the model must not invent biography.
const systemPrompt = "You are an expert sales recruiter analyzing candidate interview transcriptions. You MUST respond with valid JSON only. Do not include any text before or after the JSON object. Extract all candidate information directly from the interview audio transcription."

const analysisPromptTemplate = `Analyze the following interview transcription and provide a comprehensive summary in JSON format.

Interview Transcription:
%s

IMPORTANT: Extract ALL information from the transcription itself. Listen carefully to what the candidate says about themselves.

Provide your analysis in this exact JSON structure:
{
  "overallSummary": "A 2-3 sentence overview of the candidate",
  "strengths": ["List 4-6 key strengths with specific examples from the interview"],
  "weaknesses": ["List 3-5 areas for improvement or concerns mentioned"],
  "keySkills": ["List 5-8 relevant skills the candidate mentioned"],
  "cultureFit": "Assessment of cultural fit and soft skills based on the interview",
  "recommendationScore": 85,
  "recommendation": "Brief recommendation (Highly Recommend/Recommend/Consider/Not Recommended)",
  "notableQuotes": ["2-3 impactful quotes from the candidate"],
  "redFlags": ["Any concerns or red flags mentioned, empty array if none"],
  "candidateProfile": {
    "tradeLane": "Extract trade lanes/routes mentioned by candidate (e.g., 'Asia-US', 'Europe-Asia') or 'Not mentioned'",
    "preferredCompanyType": "Extract preferred company type mentioned (e.g., 'NVOCC', 'Freight Forwarder', '3PL') or 'Not mentioned'",
    "preferredLocation": "Extract preferred work location mentioned or 'Not mentioned'",
    "willingToRelocate": "Extract if candidate mentioned willingness to relocate (Yes/No/Not mentioned)",
    "currentRole": "Extract current or most recent sales role mentioned or 'Not mentioned'",
    "currentRevenue": "Extract annual revenue/sales figures mentioned or 'Not mentioned'",
    "salaryExpectation": "Extract salary expectations mentioned or 'Not mentioned'",
    "bookOfBusiness": "Extract if candidate mentioned having a book of business (Yes/No/Not mentioned)",
    "yearsOfExperience": "Extract total years of experience mentioned or 'Not mentioned'",
    "importExportFocus": "Extract import/export focus mentioned (Import/Export/Both/Not mentioned)",
    "industry": "Extract industry/vertical mentioned (e.g., 'Logistics', 'Freight Forwarding') or 'Not mentioned'",
    "modeOfTransportation": "Extract transportation modes mentioned (e.g., 'Ocean', 'Air', 'Ground', 'Rail') or 'Not mentioned'"
  }
}

Remember: All information in candidateProfile should come from what the candidate actually said in the interview, not from external data.`

// buildAnalysisPrompt renders the user prompt for one transcript
func buildAnalysisPrompt(transcript string) string {
	return fmt.Sprintf(analysisPromptTemplate, transcript)
}
