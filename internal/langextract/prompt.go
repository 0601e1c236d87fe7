package langextract

import "strings"

// systemMessage fixes the task description and the JSON-only response
// contract. The schema matches what Result unmarshals.
const systemMessage = `You are a resume information extractor. Respond with strict JSON only, no narration and no Markdown fences. The JSON schema is {"extractions": [{"label": string, "text": string}], "experience": [object], "education": [object], "projects": [object], "certifications": [object], "languages": [string], "confidence": number}. Extract personal details (name, contact), summary, skills, work experience (company, position, duration, description, technologies), education (institution, degree, major, duration, gpa, description), projects (name, description, technologies, duration, url, role), certifications (name, issuer, date, expiration_date, credential_id, url), and spoken languages. Labels may be Korean or English. Extract only information that is present; never guess missing values. confidence is your overall extraction confidence in [0,1].`

// workedExample is the few-shot guidance sent with every request, taken
// from a representative Korean résumé.
const workedExample = `Example input:
김철수
이메일: chulsoo.kim@example.com
전화: 010-1234-5678
주소: 서울특별시 강남구
LinkedIn: linkedin.com/in/chulsookim
GitHub: github.com/chulsookim

## 경력
### ABC 회사 - 시니어 소프트웨어 엔지니어 (2020.01 ~ 2023.12)
- React, Node.js를 이용한 웹 애플리케이션 개발

## 학력
서울대학교 컴퓨터공학과 학사 (2014.03 ~ 2018.02)

## 기술
JavaScript, React, Node.js, Python, AWS

Example output:
{"extractions":[{"label":"이름","text":"김철수"},{"label":"이메일","text":"chulsoo.kim@example.com"},{"label":"전화번호","text":"010-1234-5678"},{"label":"주소","text":"서울특별시 강남구"},{"label":"LinkedIn","text":"linkedin.com/in/chulsookim"},{"label":"GitHub","text":"github.com/chulsookim"},{"label":"기술","text":"JavaScript, React, Node.js, Python, AWS"}],"experience":[{"company":"ABC 회사","position":"시니어 소프트웨어 엔지니어","duration":"2020.01 ~ 2023.12","description":"React, Node.js를 이용한 웹 애플리케이션 개발"}],"education":[{"institution":"서울대학교","degree":"학사","major":"컴퓨터공학과","duration":"2014.03 ~ 2018.02"}],"confidence":0.9}`

func buildUserPrompt(text string) string {
	var sb strings.Builder
	sb.WriteString(workedExample)
	sb.WriteString("\n\nResume text:\n")
	sb.WriteString(text)
	return sb.String()
}
