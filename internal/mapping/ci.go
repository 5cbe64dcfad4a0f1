package mapping

import "github.com/technicalpickles/envsense/internal/confidence"

// CI is the static table of known CI vendors. ValueMappings extract
// contextual values (branch, is_pr, name) from the snapshot's env vars
// named by each ValueMapping's SourceKey (not limited to the mapping's
// indicators) — they only run once a mapping has already won.
var CI = []EnvMapping{
	{
		ID: "azure_pipelines",
		Indicators: []EnvIndicator{
			{Key: "TF_BUILD", Value: Exact("True"), Required: true},
		},
		Contexts:   []string{"ci"},
		Confidence: confidence.High,
		Traits:     map[string]any{"vendor": "azure_pipelines"},
		ValueMappings: []ValueMapping{
			{TargetKey: "branch", SourceKey: "BUILD_SOURCEBRANCHNAME"},
			{TargetKey: "is_pr", SourceKey: "SYSTEM_PULLREQUEST_PULLREQUESTID", Transform: &Transform{Kind: TransformToBool}},
		},
	},
	{
		ID: "bitbucket_pipelines",
		Indicators: []EnvIndicator{
			{Key: "BITBUCKET_BUILD_NUMBER", Value: NonEmpty, Required: true},
		},
		Contexts:   []string{"ci"},
		Confidence: confidence.High,
		Traits:     map[string]any{"vendor": "bitbucket_pipelines"},
		ValueMappings: []ValueMapping{
			{TargetKey: "branch", SourceKey: "BITBUCKET_BRANCH"},
			{TargetKey: "is_pr", SourceKey: "BITBUCKET_PR_ID", Transform: &Transform{Kind: TransformToBool}},
		},
	},
	{
		ID: "buildkite",
		Indicators: []EnvIndicator{
			{Key: "BUILDKITE", Value: Exact("true"), Required: true},
		},
		Contexts:   []string{"ci"},
		Confidence: confidence.High,
		Traits:     map[string]any{"vendor": "buildkite"},
		ValueMappings: []ValueMapping{
			{TargetKey: "branch", SourceKey: "BUILDKITE_BRANCH"},
			{TargetKey: "is_pr", SourceKey: "BUILDKITE_PULL_REQUEST", Transform: &Transform{Kind: TransformPresenceBool}},
		},
	},
	{
		ID: "circleci",
		Indicators: []EnvIndicator{
			{Key: "CIRCLECI", Value: Exact("true"), Required: true},
		},
		Contexts:   []string{"ci"},
		Confidence: confidence.High,
		Traits:     map[string]any{"vendor": "circleci"},
		ValueMappings: []ValueMapping{
			{TargetKey: "branch", SourceKey: "CIRCLE_BRANCH"},
			{TargetKey: "is_pr", SourceKey: "CIRCLE_PULL_REQUEST", Transform: &Transform{Kind: TransformPresenceBool}},
		},
	},
	{
		ID: "drone",
		Indicators: []EnvIndicator{
			{Key: "DRONE", Value: Exact("true"), Required: true},
		},
		Contexts:   []string{"ci"},
		Confidence: confidence.High,
		Traits:     map[string]any{"vendor": "drone"},
		ValueMappings: []ValueMapping{
			{TargetKey: "branch", SourceKey: "DRONE_BRANCH"},
			{TargetKey: "is_pr", SourceKey: "DRONE_BUILD_EVENT", Transform: &Transform{Kind: TransformEquals, Arg: "pull_request"}},
		},
	},
	{
		ID: "github_actions",
		Indicators: []EnvIndicator{
			{Key: "GITHUB_ACTIONS", Value: Exact("true"), Required: true},
		},
		Contexts:   []string{"ci"},
		Confidence: confidence.High,
		Traits:     map[string]any{"vendor": "github_actions"},
		ValueMappings: []ValueMapping{
			{TargetKey: "branch", SourceKey: "GITHUB_REF_NAME"},
			{TargetKey: "is_pr", SourceKey: "GITHUB_EVENT_NAME", Transform: &Transform{Kind: TransformEquals, Arg: "pull_request"}},
			{TargetKey: "name", SourceKey: "GITHUB_WORKFLOW"},
		},
	},
	{
		ID: "gitlab_ci",
		Indicators: []EnvIndicator{
			{Key: "GITLAB_CI", Value: Exact("true"), Required: true},
		},
		Contexts:   []string{"ci"},
		Confidence: confidence.High,
		Traits:     map[string]any{"vendor": "gitlab_ci"},
		ValueMappings: []ValueMapping{
			{TargetKey: "branch", SourceKey: "CI_COMMIT_REF_NAME"},
			{TargetKey: "is_pr", SourceKey: "CI_MERGE_REQUEST_ID", Transform: &Transform{Kind: TransformPresenceBool}},
			{TargetKey: "name", SourceKey: "CI_JOB_NAME"},
		},
	},
	{
		ID: "jenkins",
		Indicators: []EnvIndicator{
			{Key: "JENKINS_URL", Value: NonEmpty, Required: true},
		},
		Contexts:   []string{"ci"},
		Confidence: confidence.High,
		Traits:     map[string]any{"vendor": "jenkins"},
		ValueMappings: []ValueMapping{
			{TargetKey: "branch", SourceKey: "GIT_BRANCH"},
			{TargetKey: "name", SourceKey: "JOB_NAME"},
		},
	},
	{
		ID: "teamcity",
		Indicators: []EnvIndicator{
			{Key: "TEAMCITY_VERSION", Value: NonEmpty, Required: true},
		},
		Contexts:   []string{"ci"},
		Confidence: confidence.High,
		Traits:     map[string]any{"vendor": "teamcity"},
		ValueMappings: []ValueMapping{
			{TargetKey: "branch", SourceKey: "BUILD_VCS_BRANCH"},
		},
	},
	{
		ID: "travis",
		Indicators: []EnvIndicator{
			{Key: "TRAVIS", Value: Exact("true"), Required: true},
		},
		Contexts:   []string{"ci"},
		Confidence: confidence.High,
		Traits:     map[string]any{"vendor": "travis"},
		ValueMappings: []ValueMapping{
			{TargetKey: "branch", SourceKey: "TRAVIS_BRANCH"},
			{TargetKey: "is_pr", SourceKey: "TRAVIS_PULL_REQUEST", Transform: &Transform{Kind: TransformPresenceBool}},
		},
	},
	{
		// Generic fallback: the POSIX-ish CI=true convention many vendors
		// set alongside their own specific var. Low confidence and no
		// required indicator lets a specific vendor mapping above always
		// win the tie-break; this only surfaces when nothing more specific
		// matched.
		ID: "generic",
		Indicators: []EnvIndicator{
			{Key: "CI", Value: NonEmpty},
		},
		Contexts:   []string{"ci"},
		Confidence: confidence.Low,
		Traits:     map[string]any{"vendor": "generic"},
	},
}
