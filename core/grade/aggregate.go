package grade

// SubjectAverage is the weighted average of grades on the 0-20 scale:
// each grade contributes percentage*weight/100, the sum is divided by the total weight, then scaled by 20.
// It is undefined without grades or when the weights sum to zero.
func SubjectAverage(grades []Grade) (float64, bool) {
	var weighted, weights float64
	for _, g := range grades {
		if g.MaxGrade <= 0 {
			continue
		}
		weighted += g.Percentage() * g.Weight / 100
		weights += g.Weight
	}
	if weights == 0 {
		return 0, false
	}
	return weighted / weights * Scale, true
}

// GPA is the mean of the defined averages of the given subjects. Subjects without an average are left out.
func GPA(subjectIDs []string, grades []Grade) (float64, bool) {
	bySubject := groupBySubject(grades)

	var sum float64
	var n int
	for _, id := range subjectIDs {
		if avg, ok := SubjectAverage(bySubject[id]); ok {
			sum += avg
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// PredictFinal projects the final grade of a subject assuming the remaining weight (100 - current weight)
// is graded at the current average: (avg*current + avg*remaining) / 100.
// A subject whose weights reach 100 returns its current average.
func PredictFinal(subjectID string, grades []Grade) (float64, bool) {
	subjectGrades := groupBySubject(grades)[subjectID]
	if len(subjectGrades) == 0 {
		return 0, false
	}

	avg, ok := SubjectAverage(subjectGrades)
	if !ok {
		return 0, false
	}
	current := TotalWeight(subjectGrades)
	remaining := 100 - current
	if remaining <= 0 {
		return avg, true
	}
	return (avg*current + avg*remaining) / 100, true
}

// TotalWeight sums the weights of grades.
func TotalWeight(grades []Grade) float64 {
	var total float64
	for _, g := range grades {
		total += g.Weight
	}
	return total
}

// groupBySubject drops grades without a subject.
func groupBySubject(grades []Grade) map[string][]Grade {
	groups := make(map[string][]Grade)
	for _, g := range grades {
		if g.SubjectID != nil {
			groups[*g.SubjectID] = append(groups[*g.SubjectID], g)
		}
	}
	return groups
}
