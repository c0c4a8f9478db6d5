package domain

import "slices"

// BuildReport is the structured form of one javac build transcript.
type BuildReport struct {
	Header           Header           `json:"header"`
	Environment      BuildEnvironment `json:"environment"`
	ProjectStructure ProjectStructure `json:"project_structure"`
	Compilation      Compilation      `json:"compilation"`
	Errors           DiagnosticSet    `json:"errors"`
	Summary          BuildSummary     `json:"summary"`
	RawContent       string           `json:"raw_content,omitempty"`
}

// BuildEnvironment holds compiler settings echoed in the transcript.
type BuildEnvironment struct {
	Encoding        string `json:"encoding,omitempty"`
	JavaToolOptions string `json:"java_tool_options,omitempty"`
}

// ProjectStructure is the declared file inventory.
type ProjectStructure struct {
	TotalFiles int         `json:"total_files"`
	Files      []FileEntry `json:"files"`
}

type Compilation struct {
	Commands    []CompilationCommand `json:"commands"`
	FileResults []CompilationResult  `json:"file_results"`
}

type CompilationCommand struct {
	File    string `json:"file"`
	Command string `json:"command"`
}

// CompilationResult is one detected compilation attempt. Output is only kept for failures.
type CompilationResult struct {
	File    string `json:"file"`
	Command string `json:"command"`
	Success bool   `json:"success"`
	Output  string `json:"output"`
}

type BuildSummary struct {
	Summary
	SuccessRate     float64 `json:"success_rate"`
	OutputDirectory string  `json:"output_directory,omitempty"`
	FailedFile      string  `json:"failed_file,omitempty"`
}

// Succeeded reports whether the build transcript carried the success banner.
func (r *BuildReport) Succeeded() bool {
	return r != nil && r.Summary.Status == StatusSuccess
}

// NewBuildReport returns the default report used for missing input.
func NewBuildReport() *BuildReport {
	return &BuildReport{
		ProjectStructure: ProjectStructure{Files: []FileEntry{}},
		Compilation: Compilation{
			Commands:    []CompilationCommand{},
			FileResults: []CompilationResult{},
		},
		Errors:  NewDiagnosticSet(nil),
		Summary: BuildSummary{Summary: Summary{Status: StatusUnknown}},
	}
}

// Clone returns a copy that shares no slices with r.
func (r *BuildReport) Clone() *BuildReport {
	if r == nil {
		return nil
	}
	out := *r
	out.ProjectStructure.Files = slices.Clone(r.ProjectStructure.Files)
	out.Compilation.Commands = slices.Clone(r.Compilation.Commands)
	out.Compilation.FileResults = slices.Clone(r.Compilation.FileResults)
	out.Errors.Details = slices.Clone(r.Errors.Details)
	return &out
}
