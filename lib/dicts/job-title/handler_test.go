package jobtitleprovider

import (
	"hirex-backend/lib/testutil"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindByName(t *testing.T) {
	st := testutil.NewStore()
	st.AddJobTitle("Data Engineer")
	st.AddJobTitle("QA Engineer")
	st.AddJobTitle("Product Manager")

	list, err := NewInstance(st.JobTitles()).FindByName("  engineer ")
	require.NoError(t, err)
	require.Len(t, list, 2)
}
