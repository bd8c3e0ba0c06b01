package grade

import "github.com/NicoleRU22/Studynest/core/subject"

type SubjectSummary struct {
	SubjectID   string   `json:"subject_id"`
	SubjectName string   `json:"subject_name"`
	Color       string   `json:"color"`
	GradeCount  int      `json:"grade_count"`
	TotalWeight float64  `json:"total_weight"`
	Average     *float64 `json:"average"`    // nil: N/A
	Prediction  *float64 `json:"prediction"` // nil: N/A
}

type Summary struct {
	GPA        *float64         `json:"gpa"` // nil: N/A
	GradeCount int              `json:"grade_count"`
	Subjects   []SubjectSummary `json:"subjects"`
}

// Summarize computes the per-subject averages and predictions along with the GPA.
// Subjects keep the order they are given in.
func Summarize(subjects []subject.Subject, grades []Grade) Summary {
	bySubject := groupBySubject(grades)
	ids := make([]string, 0, len(subjects))
	summary := Summary{
		GradeCount: len(grades),
		Subjects:   make([]SubjectSummary, 0, len(subjects)),
	}

	for _, s := range subjects {
		ids = append(ids, s.ID)
		sg := bySubject[s.ID]
		ss := SubjectSummary{
			SubjectID:   s.ID,
			SubjectName: s.Name,
			Color:       s.Color,
			GradeCount:  len(sg),
			TotalWeight: TotalWeight(sg),
		}
		if avg, ok := SubjectAverage(sg); ok {
			ss.Average = &avg
		}
		if pred, ok := PredictFinal(s.ID, grades); ok {
			ss.Prediction = &pred
		}
		summary.Subjects = append(summary.Subjects, ss)
	}

	if gpa, ok := GPA(ids, grades); ok {
		summary.GPA = &gpa
	}
	return summary
}
