package resources

// Canned query documents for the Admin API resources. The transport
// treats these as opaque strings; there is no query builder here.

const productListQuery = `
query getProducts($first: Int!, $after: String) {
    products(first: $first, after: $after) {
        edges {
            node {
                id
                title
                handle
                status
                createdAt
                updatedAt
                productType
                vendor
                tags
                description
            }
            cursor
        }
        pageInfo {
            hasNextPage
            hasPreviousPage
            startCursor
            endCursor
        }
    }
}`

const productGetQuery = `
query getProduct($id: ID!) {
    product(id: $id) {
        id
        title
        handle
        status
        createdAt
        updatedAt
        productType
        vendor
        tags
        description
    }
}`

const productCreateMutation = `
mutation productCreate($input: ProductInput!) {
    productCreate(input: $input) {
        product {
            id
            title
            handle
            status
            createdAt
        }
        userErrors {
            field
            message
        }
    }
}`

const productUpdateMutation = `
mutation productUpdate($input: ProductInput!) {
    productUpdate(input: $input) {
        product {
            id
            title
            handle
            status
            updatedAt
        }
        userErrors {
            field
            message
        }
    }
}`

const productDeleteMutation = `
mutation productDelete($input: ProductDeleteInput!) {
    productDelete(input: $input) {
        deletedProductId
        userErrors {
            field
            message
        }
    }
}`

const customerListQuery = `
query getCustomers($first: Int!, $after: String) {
    customers(first: $first, after: $after) {
        edges {
            node {
                id
                firstName
                lastName
                email
                phone
                createdAt
                updatedAt
                state
                note
            }
            cursor
        }
        pageInfo {
            hasNextPage
            hasPreviousPage
            startCursor
            endCursor
        }
    }
}`

const customerGetQuery = `
query getCustomer($id: ID!) {
    customer(id: $id) {
        id
        firstName
        lastName
        email
        phone
        createdAt
        updatedAt
        state
        note
    }
}`

const orderListQuery = `
query getOrders($first: Int!, $after: String) {
    orders(first: $first, after: $after) {
        edges {
            node {
                id
                name
                email
                createdAt
                updatedAt
                processedAt
                displayFinancialStatus
                displayFulfillmentStatus
                customer {
                    id
                    firstName
                    lastName
                    email
                }
            }
            cursor
        }
        pageInfo {
            hasNextPage
            hasPreviousPage
            startCursor
            endCursor
        }
    }
}`

const orderGetQuery = `
query getOrder($id: ID!) {
    order(id: $id) {
        id
        name
        email
        createdAt
        updatedAt
        processedAt
        displayFinancialStatus
        displayFulfillmentStatus
    }
}`
