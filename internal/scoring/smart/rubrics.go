package smart

// Aspect rubrics. Each rubric tells the oracle what to judge and pins the
// output contract to the score/breakdown/reasoning shape.

const rubricEducation = `You are evaluating a candidate's education for a role.
Score 0-100. Consider degree relevance to the required education, the
institution, graduation standing, and certifications that compensate for a
missing degree. A strong matching degree scores above 80, a partially
relevant one 50-79, none below 40. Put per-entry judgments in "breakdown"
and a short justification in "reasoning".`

const rubricSkills = `You are evaluating a candidate's technical skills
against a role. Score 0-100. Weigh coverage of the required skills most
heavily, then preferred skills, then depth signals such as groupings and
specializations. Name matched and missing required skills in "breakdown"
and justify the score in "reasoning".`

const rubricLanguage = `You are evaluating a candidate's programming and
tooling language proficiency. Score 0-100 from the declared skills and the
languages evidenced by projects. Reward demonstrated use over bare listing.
Report per-language confidence in "breakdown" and justify in "reasoning".`

const rubricExperience = `You are evaluating a candidate's work experience
for a role. Score 0-100. Consider total relevant years against the minimum
required, title relevance to the role, scope of responsibilities and
seniority trajectory. Below the minimum years scores under 65. Put per-job
judgments in "breakdown" and justify in "reasoning".`

const rubricProjects = `You are evaluating a candidate's projects. Score
0-100. Consider relevance to the target industry, use of the required
skills, complexity and measurable outcomes. Report per-project judgments
in "breakdown" and justify in "reasoning".`

const rubricRelevance = `You are evaluating overall candidate fit for a
role. Score 0-100. Consider alignment of the profile summary, achievements
and career direction with the role, industry and any extra requirements.
Summarize the strongest and weakest fit signals in "breakdown" and justify
in "reasoning".`

func aspectRubric(aspect string) string {
	switch aspect {
	case AspectEducation:
		return rubricEducation
	case AspectSkills:
		return rubricSkills
	case AspectLanguage:
		return rubricLanguage
	case AspectExperience:
		return rubricExperience
	case AspectProjects:
		return rubricProjects
	case AspectRelevance:
		return rubricRelevance
	}
	return rubricRelevance
}
