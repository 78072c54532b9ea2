package scenario

// Sample is the scenario written by "taxit init".
const Sample = `year: 2021
jurisdictions:
  - name: federal
people:
  - name: alice
    status: single
  - name: bob
    status: married
companies:
  - name: acme
    employees:
      - name: alice
        benefits: [401k, child_care]
events:
  - kind: salary
    employer: acme
    employee: alice
    gross: 30000
    retirement_employee: 3000
    retirement_match: 1500
  - kind: salary
    employer: acme
    employee: alice
    gross: 30000
    dependent_care: 2000
  - kind: contract
    payer: acme
    payee: bob
    amount: 12000
  - kind: capital_gain
    person: bob
    amount: 90000
`
